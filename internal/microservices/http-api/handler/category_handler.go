package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bazzangee/internal/microservices/http-api/render"
	"bazzangee/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, list)
}

// Get handles GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		render.Error(c, http.StatusBadRequest, "invalid category id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	category, err := h.svc.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	render.JSON(c, http.StatusOK, category)
}
