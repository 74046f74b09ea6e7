package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/voltdrive/enquiry-api/config"
	"github.com/voltdrive/enquiry-api/internal/handlers"
	"github.com/voltdrive/enquiry-api/internal/middleware"
	"github.com/voltdrive/enquiry-api/internal/services"
	"github.com/voltdrive/enquiry-api/pkg/logger"
	"github.com/voltdrive/enquiry-api/pkg/mailer"
	"github.com/voltdrive/enquiry-api/pkg/metrics"
	"github.com/voltdrive/enquiry-api/pkg/profiling"
	"github.com/voltdrive/enquiry-api/pkg/tracing"
)

// newSender picks the mail transport: SMTP whenever a host is configured,
// the disk-writing dev sender otherwise (development only, enforced by
// config validation).
func newSender(cfg *config.Config) mailer.Sender {
	if cfg.Email.Host == "" {
		logger.Warn("EMAIL_HOST not set, writing emails to disk", zap.String("dir", cfg.Email.DevDir))
		return mailer.NewDevSender(cfg.Email.DevDir)
	}
	return mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Secure:   cfg.Email.Secure,
		User:     cfg.Email.User,
		Password: cfg.Email.Password,
	})
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting enquiry API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling (disabled unless configured)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize mail transport
	sender := newSender(cfg)

	// Initialize services
	enquiryService := services.NewEnquiryService(sender, cfg)
	contentService := services.NewContentService()

	// Initialize handlers
	enquiryHandler := handlers.NewEnquiryHandler(enquiryService)
	contentHandler := handlers.NewContentHandler(contentService)
	healthHandler := handlers.NewHealthHandler(func() bool {
		return cfg.Email.Host != "" || cfg.IsDevelopment()
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS: only the marketing site's origins, plus localhost in development
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// API v1 routes. The enquiry body limit covers the PDF/DOCX attachment.
	v1 := router.Group("/api/v1")
	v1.POST("/enquiry", middleware.BodySizeLimitMiddleware(10*1024*1024), enquiryHandler.SubmitEnquiry)
	v1.GET("/blog", contentHandler.GetBlogPosts)
	v1.GET("/faq", contentHandler.GetFAQ)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
