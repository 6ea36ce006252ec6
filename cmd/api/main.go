package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/autocare360/autocare-go/internal/config"
	"github.com/autocare360/autocare-go/internal/handler"
	"github.com/autocare360/autocare-go/internal/middleware"
	"github.com/autocare360/autocare-go/internal/repository"
	"github.com/autocare360/autocare-go/internal/service"
	"github.com/autocare360/autocare-go/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// The mock dataset and the credential store are both required at
	// boot; failure of either is fatal to the process.
	dataset, err := telemetry.Load(cfg.MockDataPath)
	if err != nil {
		slog.Error("loading mock vehicle dataset failed", "path", cfg.MockDataPath, "error", err)
		os.Exit(1)
	}
	slog.Info("mock vehicle dataset loaded", "records", dataset.Len())

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, dataset, cfg.JWTSecret,
		config.RegisterTokenExpiry, config.LoginTokenExpiry)
	authHandler := handler.NewAuthHandler(authService)

	dashboardService := service.NewDashboardService(userRepo, dataset)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	auth := middleware.NewAuthenticator(userRepo, cfg.JWTSecret)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/register", authHandler.HandleRegister)
		r.Post("/api/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Require)
		r.Get("/api/dashboard", dashboardHandler.HandleOverview)
		r.Get("/api/dashboard/vehicle", dashboardHandler.HandleVehicle)
		r.Get("/api/dashboard/profile", dashboardHandler.HandleProfile)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
