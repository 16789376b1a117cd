package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/bumiauto/web-api/internal/http/handlers"
	appmw "github.com/bumiauto/web-api/internal/http/middleware"
	"github.com/bumiauto/web-api/internal/platform/mailer"
	"github.com/bumiauto/web-api/internal/platform/session"
	"github.com/bumiauto/web-api/internal/platform/store"
	"github.com/bumiauto/web-api/internal/repo/postgres"
	"github.com/bumiauto/web-api/internal/service"
	"github.com/bumiauto/web-api/pkg/config"
	"github.com/bumiauto/web-api/pkg/logger"
	mw "github.com/bumiauto/web-api/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	provider, err := store.NewProvider(ctx, cfg.Database.AnonURL, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	// Public read paths go through the anonymous credential; everything
	// that writes or moderates uses the elevated one.
	anonDB := provider.Client(store.Anonymous)
	elevatedDB := provider.Client(store.Elevated)

	publicPosts := postgres.NewPostRepository(anonDB)
	adminPosts := postgres.NewPostRepository(elevatedDB)
	comments := postgres.NewCommentRepository(elevatedDB)
	likes := postgres.NewLikeRepository(elevatedDB)
	contacts := postgres.NewContactRepository(elevatedDB)
	loans := postgres.NewLoanRepository(elevatedDB)
	admins := postgres.NewAdminRepository(elevatedDB)

	codec := session.NewCodec(cfg.Session.Secret, cfg.Session.TTL)
	secure := cfg.IsProduction()

	verifier := service.ChainVerifier{
		&service.DBVerifier{Admins: admins},
		&service.StaticVerifier{
			Email:        cfg.Admin.Email,
			Password:     cfg.Admin.Password,
			PasswordHash: cfg.Admin.PasswordHash,
			Name:         cfg.Admin.Name,
			Role:         cfg.Admin.Role,
		},
	}

	mailSvc := buildMailer(cfg)

	authSvc := service.NewAuthService(verifier, codec)
	publicPostSvc := service.NewPostService(publicPosts)
	adminPostSvc := service.NewPostService(adminPosts)
	commentSvc := service.NewCommentService(comments, publicPosts, cfg.Blog.MaxCommentLength)
	engagementSvc := service.NewEngagementService(likes, adminPosts)
	inquirySvc := service.NewInquiryService(contacts, loans, mailSvc, cfg.Email.ContactRecipient, cfg.Email.LoanRecipient)
	dashboardSvc := service.NewDashboardService(contacts, loans, comments, adminPosts)

	authHandler := handlers.NewAuthHandler(authSvc, codec, secure)
	blogHandler := handlers.NewBlogHandler(publicPostSvc, commentSvc, engagementSvc)
	formsHandler := handlers.NewFormsHandler(inquirySvc)
	adminHandler := handlers.NewAdminHandler(dashboardSvc, adminPostSvc, commentSvc, inquirySvc)

	limiter := appmw.NewRateLimiter(provider.ElevatedPool(), appmw.RateLimitConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
	})

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.Health)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/blog", blogHandler.Routes(limiter.Middleware()))

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware())
			formsHandler.Register(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(appmw.RequireAdmin(codec, secure))
			r.Mount("/", adminHandler.Routes())
		})
	})

	// Back-office pages, gated by the session cookie.
	adminUI := http.StripPrefix("/admin", http.FileServer(http.Dir(cfg.Server.AdminUIDir)))
	r.Route("/admin", func(r chi.Router) {
		r.Use(appmw.AdminGate(codec, secure))
		r.Handle("/", adminUI)
		r.Handle("/*", adminUI)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting server", "port", cfg.Server.Port, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// buildMailer picks the email backend: dev logging, MailerSend when an
// API key is present, SMTP otherwise.
func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		logger.Info("Email dev mode active, messages will be logged")
		return mailer.NewDev()
	}
	if cfg.Email.MailerSendKey != "" {
		ms, err := mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			logger.Error("MailerSend misconfigured, falling back to dev mailer", "error", err)
			return mailer.NewDev()
		}
		return ms
	}
	return mailer.NewSMTP(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.FromEmail,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPass,
		cfg.Email.SMTPUseTLS,
	)
}
