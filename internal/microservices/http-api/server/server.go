// Package server assembles the gin engine and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"bazzangee/internal/config"
	"bazzangee/internal/metrics"
	"bazzangee/internal/microservices/http-api/handler"
	"bazzangee/internal/microservices/http-api/middleware"
	"bazzangee/internal/microservices/http-api/render"
	"bazzangee/internal/microservices/http-api/service"
	"bazzangee/internal/session"
	"bazzangee/internal/storage"
	"bazzangee/internal/validation"

	"github.com/gin-gonic/gin"
)

// MaxRequestBody leaves 1MB of multipart overhead over the largest image.
const MaxRequestBody = validation.MaxImageSize + 1<<20

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Config          *config.Config
	Logger          *slog.Logger
	AuthService     service.AuthService
	ReviewService   service.ReviewService
	CategoryService service.CategoryService
	SessionStore    session.Store
	CookieCodec     *session.CookieCodec
	Uploader        storage.Uploader
	RateLimiter     *middleware.RateLimiter
	// Ping reports whether backing stores are reachable; nil skips the check.
	Ping func(ctx context.Context) error
}

// NewRouter builds the engine. Middleware order: recovery, request log,
// metrics, CORS, rate limit, body limit, session loading.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	cookie := session.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.SessionCookieSecure}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	if cfg.PrometheusEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.CORS(cfg.CORSOrigins))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Handler())
	}
	r.Use(middleware.BodyLimit(MaxRequestBody))
	r.Use(middleware.LoadSession(deps.SessionStore, deps.CookieCodec, cookie, deps.Logger))

	r.GET("/check-conn", func(c *gin.Context) {
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				deps.Logger.Error("health_check_failed", "error", err)
				render.JSON(c, http.StatusServiceUnavailable, gin.H{"message": "backing store unavailable"})
				return
			}
		}
		render.JSON(c, http.StatusOK, gin.H{"message": "API is alive and database connected"})
	})
	if cfg.PrometheusEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	api := r.Group("/api")
	handler.NewAuthHandler(deps.AuthService, deps.SessionStore, deps.CookieCodec, cookie, deps.Logger).RegisterRoutes(api)
	handler.NewReviewHandler(deps.ReviewService, deps.Uploader, deps.Logger).RegisterRoutes(api)
	handler.NewCategoryHandler(deps.CategoryService).RegisterRoutes(api)

	return r
}

// New wraps the engine in an http.Server with conservative timeouts. The
// write timeout leaves room for a 10MB upload to object storage.
func New(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      cfg.UploadTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Run serves until ctx is cancelled, then drains connections for up to
// shutdownTimeout.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http_server_listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("http_server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("http_server_stopped")
	return nil
}
