package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shape-gallery/internal/config"
	apphttp "shape-gallery/internal/http"
	"shape-gallery/internal/repository/sqlite"
	"shape-gallery/internal/service"
	"shape-gallery/internal/token"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	shapeRepo := sqlite.NewShapeRepository(db)
	adminRepo := sqlite.NewAdminRepository(db)

	if err := shapeRepo.Init(ctx); err != nil {
		logger.Fatalf("init shape repository: %v", err)
	}
	if err := adminRepo.Init(ctx); err != nil {
		logger.Fatalf("init admin repository: %v", err)
	}

	shapeService := service.NewShapeService(shapeRepo)
	authService := service.NewAuthService(adminRepo)

	admin, err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
	if err != nil {
		logger.Fatalf("provision admin: %v", err)
	}
	logger.Infof("admin identity ready: %s", admin.Username)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	tokens := token.NewManager(cfg.Auth.JWTSecret, sessionTTL)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		shapeService,
		authService,
		tokens,
		sessionTTL,
		cfg.Login.RateLimitPerMinute,
		cfg.Login.RateLimitBurst,
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
