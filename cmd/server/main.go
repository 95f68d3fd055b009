package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "probimport/docs"
	"probimport/internal/config"
	"probimport/internal/handler"
	"probimport/internal/logger"
	"probimport/internal/markdown"
	"probimport/internal/mount"
	"probimport/internal/repository/postgres"
	"probimport/internal/router"
	"probimport/internal/service"
)

// @title probimport API
// @version 1.0
// @description Problem administration backend with markdown import.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	problemRepo := postgres.NewProblemRepo(db)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT)
	problemSvc := service.NewProblemService(problemRepo)

	// Initialize handlers
	parseH := handler.NewParseHandler(markdown.NewParser(cfg.Parse), cfg.Parse.MaxTextBytes, log)
	problemH := handler.NewProblemHandler(problemSvc, log)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r, err := router.Setup(router.Deps{
		AuthService:    authSvc,
		ParseHandler:   parseH,
		ProblemHandler: problemH,
		HealthHandler:  healthH,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
		Mounts:         mount.Default,
	})
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-stop:
	}

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
