package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"agency-site-server/config"
	"agency-site-server/content"
	"agency-site-server/database"
	"agency-site-server/jobs"
	"agency-site-server/logger"
	"agency-site-server/middleware"
	"agency-site-server/notify"
	"agency-site-server/repository"
	"agency-site-server/routes"
	"agency-site-server/services"
	"agency-site-server/storage"
	ws "agency-site-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Initialize(cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}

	site, err := content.Load(cfg.Site.ContentFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load site content")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Image CDN is optional; without it uploads fail and records are kept
	var images storage.ImageStore
	if cfg.Cloudinary.Enabled() {
		cdn, err := storage.NewCloudinary(cfg.Cloudinary)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize Cloudinary")
		}
		images = cdn
	} else {
		logger.Warn().Msg("Cloudinary is not configured, image uploads are disabled")
	}

	// Admin feed and optional email notifications
	hub := ws.NewHub()
	go hub.Run(ctx)

	notifiers := notify.Multi{hub}
	if cfg.Mail.Enabled() {
		notifiers = append(notifiers, notify.NewMailer(cfg.Mail))
		logger.Info().Str("to", cfg.Mail.NotifyTo).Msg("Email notifications enabled")
	}

	db := database.GetDB()
	retry := storage.RetryPolicy{MaxAttempts: cfg.Cloudinary.MaxAttempts, Backoff: cfg.Cloudinary.RetryBackoff}

	reviewRepo := repository.NewReviewRepository(db)
	reviews := services.NewReviewService(reviewRepo, images, notifiers)
	projects := services.NewProjectService(repository.NewProjectRepository(db), images, retry)
	team := services.NewTeamService(repository.NewTeamMemberRepository(db), images, retry)
	inquiries := services.NewInquiryService(repository.NewInquiryRepository(db), notifiers)
	auth := services.NewAuthService(repository.NewUserRepository(db), repository.NewRefreshTokenRepository(db), cfg.JWT)

	created, err := auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	if created {
		logger.Info().Str("email", cfg.Admin.Email).Msg("Created initial admin account")
	}

	limiter := middleware.NewRateLimiter()

	routes.RegisterValidators()
	router := routes.NewRouter(&routes.Deps{
		Config:       cfg,
		Site:         site,
		Reviews:      reviews,
		Testimonials: services.NewTestimonialService(reviewRepo, site.FallbackTestimonials),
		Projects:     projects,
		Team:         team,
		Inquiries:    inquiries,
		Dashboard:    services.NewDashboardService(reviews, inquiries, projects, team),
		Auth:         auth,
		Hub:          hub,
		Limiter:      limiter,
	})

	scheduler := jobs.NewScheduler(time.Minute)
	for _, job := range []jobs.Job{
		jobs.NewTokenCleanupJob(auth),
		jobs.NewLimiterCleanupJob(limiter, time.Hour),
	} {
		if err := scheduler.Register(job); err != nil {
			logger.Fatal().Err(err).Str("job", job.Name()).Msg("Failed to schedule job")
		}
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("mode", cfg.Server.GinMode).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	scheduler.Stop(shutdownCtx)
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info().Msg("Server stopped")
}
