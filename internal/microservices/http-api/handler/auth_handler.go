package handler

import (
	"log/slog"
	"net/http"

	"bazzangee/internal/microservices/http-api/dto"
	"bazzangee/internal/microservices/http-api/middleware"
	"bazzangee/internal/microservices/http-api/render"
	"bazzangee/internal/microservices/http-api/service"
	"bazzangee/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	store       session.Store
	codec       *session.CookieCodec
	cookie      session.CookieConfig
	logger      *slog.Logger
}

func NewAuthHandler(authService service.AuthService, store session.Store, codec *session.CookieCodec, cookie session.CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		codec:       codec,
		cookie:      cookie,
		logger:      logger,
	}
}

// RegisterRoutes registers account and session routes under /api/users.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.POST("/login", h.Login)
		users.POST("/logout", h.Logout)
		users.GET("/me", middleware.RequireLogin(), h.Me)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	render.JSON(c, http.StatusCreated, dto.RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login checks credentials, opens a session and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		render.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	sessionUser := session.SessionUser{ID: user.ID, Username: user.Username}
	id, err := h.store.Create(ctx, sessionUser)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.codec.Encode(id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookie.Write(c, token, int(h.codec.TTL().Seconds()))
	h.logger.Info("user_logged_in", "user_id", user.ID)
	render.JSON(c, http.StatusOK, dto.SessionResponse{UserID: user.ID, Username: user.Username})
}

// Logout always succeeds; the cookie is expired even without a live session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id := session.IDFromContext(c); id != "" {
		if err := h.store.Delete(c.Request.Context(), id); err != nil {
			h.logger.Warn("session_delete_failed", "error", err)
		}
	}
	h.cookie.Write(c, "", -1)
	render.JSON(c, http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := session.UserFromContext(c)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, dto.SessionResponse{UserID: user.ID, Username: user.Username})
}
