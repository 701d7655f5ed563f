package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/baharkarakas/tours-backend/internal/api"
	"github.com/baharkarakas/tours-backend/internal/auth"
	"github.com/baharkarakas/tours-backend/internal/config"
	"github.com/baharkarakas/tours-backend/internal/db"
	"github.com/baharkarakas/tours-backend/internal/logger"
	"github.com/baharkarakas/tours-backend/internal/metrics"
	"github.com/baharkarakas/tours-backend/internal/repository/postgres"
	"github.com/baharkarakas/tours-backend/internal/services"
	"github.com/baharkarakas/tours-backend/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	aud := services.NewAuditor(repos.AuditLogs, wp)
	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	userSvc := services.NewUserService(repos.Users, tm, aud)
	tourSvc := services.NewTourService(repos.Tours, aud)
	reviewSvc := services.NewReviewService(repos.Reviews, repos.Tours, aud, log)
	bookingSvc := services.NewBookingService(repos.Bookings, repos.Tours, aud)

	r := api.NewRouter(api.Deps{
		Cfg:        cfg,
		TM:         tm,
		UserSvc:    userSvc,
		TourSvc:    tourSvc,
		ReviewSvc:  reviewSvc,
		BookingSvc: bookingSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
