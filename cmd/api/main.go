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

	"github.com/projectsetu/setu-api/internal/api"
	"github.com/projectsetu/setu-api/internal/api/handlers"
	"github.com/projectsetu/setu-api/internal/api/httpx"
	"github.com/projectsetu/setu-api/internal/auth"
	"github.com/projectsetu/setu-api/internal/config"
	"github.com/projectsetu/setu-api/internal/db"
	"github.com/projectsetu/setu-api/internal/logger"
	"github.com/projectsetu/setu-api/internal/metrics"
	"github.com/projectsetu/setu-api/internal/middleware"
	"github.com/projectsetu/setu-api/internal/repository/mongodb"
	"github.com/projectsetu/setu-api/internal/services"
	"github.com/projectsetu/setu-api/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("mongo connect", "err", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	database := client.Database(cfg.MongoDB)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Error("ensure indexes", "err", err)
		os.Exit(1)
	}

	repos := mongodb.NewRepositories(database)
	if err := db.SeedAdmin(ctx, repos.Users, cfg); err != nil {
		log.Error("seed admin", "err", err)
		os.Exit(1)
	}

	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpire)
	rs := &httpx.Responder{IncludeStack: !cfg.IsProd()}
	authn := middleware.NewAuthenticator(tm, repos.Users, rs)

	authSvc := services.NewAuthService(repos.Users, tm)
	userSvc := services.NewUserService(repos.Users)

	cookieTTL := time.Duration(cfg.CookieExpireDays) * 24 * time.Hour

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:          cfg,
		RS:           rs,
		Auth:         authn,
		AuthH:        handlers.NewAuthHandler(authSvc, rs, cfg.IsProd(), cookieTTL),
		UserH:        handlers.NewUserHandler(userSvc, rs),
		BlogH:        handlers.NewBlogHandler(repos.Blogs, rs, wp),
		ProjectH:     handlers.NewProjectHandler(repos.Projects, rs),
		TestimonialH: handlers.NewTestimonialHandler(repos.Testimonials, rs),
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
