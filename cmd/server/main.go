package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialfeed/backend/internal/config"
	"socialfeed/backend/internal/database"
	"socialfeed/backend/internal/followcache"
	"socialfeed/backend/internal/handler"
	"socialfeed/backend/internal/media"
	"socialfeed/backend/internal/metrics"
	"socialfeed/backend/internal/repository"
	"socialfeed/backend/internal/service"
	"socialfeed/backend/internal/telemetry"
	"socialfeed/backend/pkg/jwt"
	"socialfeed/backend/pkg/logger"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "socialfeed/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Social Feed API
// @version         1.0
// @description     Accounts, posts, follows, likes and notifications.
// @host            localhost:8800
// @BasePath        /
// @securityDefinitions.apiKey CookieAuth
// @in cookie
// @name token
func main() {
	cfg, fileFound, err := config.LoadConfig(".")
	if err != nil {
		// The logger is not configured yet.
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.IsProduction()); err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()
	if !fileFound {
		logger.Info("no .env file found, using environment only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telemetry.InitSentry(cfg.SentryDSN, cfg.Env); err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	}
	defer telemetry.Flush(2 * time.Second)

	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	logger.Info("database connected")
	store := repository.NewStore(db)

	var following *followcache.Index
	if cfg.RedisURL != "" {
		client, err := followcache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("following cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			following = followcache.New(client, followcache.DefaultTTL)
			logger.Info("following cache enabled")
		}
	}

	var binder media.Binder = media.Disabled{}
	if cfg.MediaEnabled() {
		cld, err := media.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logger.Fatal("media", zap.Error(err))
		}
		binder = cld
	} else {
		logger.Warn("cloudinary credentials missing, image uploads disabled")
	}

	issuer := jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	h := handler.New(
		store,
		service.NewAuthService(store, issuer),
		service.NewUserService(store, binder, following),
		service.NewPostService(store, binder, following),
		service.NewNotificationService(store),
		handler.CookieOptions{TTL: issuer.TTL(), Secure: cfg.IsProduction()},
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		logger.GinLogger(),
		handler.CORS(cfg.FrontendOrigin),
		handler.BodyLimit(handler.MaxBodyBytes),
		gzip.Gzip(gzip.DefaultCompression),
		telemetry.GinMiddleware(),
		metrics.Middleware(),
	)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	h.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
