package command

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"bazzangee/database"
	"bazzangee/internal/microservices/http-api/middleware"
	"bazzangee/internal/microservices/http-api/repository"
	"bazzangee/internal/microservices/http-api/server"
	"bazzangee/internal/microservices/http-api/service"
	"bazzangee/internal/session"
	"bazzangee/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gdb, sqlDB, err := database.ConnectDB(cfg, logger)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		store, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword, cfg.SessionTTL)
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}
		defer store.Close()

		uploader, err := storage.NewS3Uploader(storage.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.PublicBaseURL(),
			Timeout:       cfg.UploadTimeout,
		}, logger)
		if err != nil {
			return err
		}

		userRepo := repository.NewUserRepository(gdb)
		reviewRepo := repository.NewReviewRepository(gdb)
		orderFoodRepo := repository.NewOrderFoodRepository(gdb)
		categoryRepo := repository.NewCategoryRepository(gdb)

		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
		go limiter.Run(ctx, time.Minute)

		router := server.NewRouter(server.Dependencies{
			Config:          cfg,
			Logger:          logger,
			AuthService:     service.NewAuthService(userRepo, logger),
			ReviewService:   service.NewReviewService(reviewRepo, orderFoodRepo, logger),
			CategoryService: service.NewCategoryService(categoryRepo),
			SessionStore:    store,
			CookieCodec:     session.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL),
			Uploader:        uploader,
			RateLimiter:     limiter,
			Ping: func(ctx context.Context) error {
				if err := sqlDB.PingContext(ctx); err != nil {
					return err
				}
				return store.Ping(ctx)
			},
		})

		return server.Run(ctx, server.New(cfg, router), shutdownTimeout, logger)
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "time allowed for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)
}
