package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/erphive/attendance-planner/internal/auth"
	"github.com/erphive/attendance-planner/internal/config"
	"github.com/erphive/attendance-planner/internal/domain"
	"github.com/erphive/attendance-planner/internal/handler"
	"github.com/erphive/attendance-planner/internal/health"
	"github.com/erphive/attendance-planner/internal/infra/payment"
	"github.com/erphive/attendance-planner/internal/infra/planrecorder"
	"github.com/erphive/attendance-planner/internal/infra/repository"
	"github.com/erphive/attendance-planner/internal/observability/logging"
	"github.com/erphive/attendance-planner/internal/observability/metrics"
	"github.com/erphive/attendance-planner/internal/observability/middleware"
	"github.com/erphive/attendance-planner/internal/service/billing"
	"github.com/erphive/attendance-planner/internal/service/dashboard"
	"github.com/erphive/attendance-planner/internal/service/impact"
	"github.com/erphive/attendance-planner/internal/service/planner"
	"github.com/erphive/attendance-planner/internal/service/projection"
	"github.com/erphive/attendance-planner/internal/service/status"
	syncservice "github.com/erphive/attendance-planner/internal/service/sync"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; deployments configure through the environment.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.Alerts.Validate(); err != nil {
		slog.Error("alert queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	plannerMetrics, err := metrics.NewPlannerMetrics()
	if err != nil {
		slog.Error("failed to initialize planner metrics", slog.String("error", err.Error()))
		return 1
	}

	// Search analytics recorder (InfluxDB for local, BigQuery for gcloud)
	searchRecorder, err := planrecorder.NewRecorder(ctx, planrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize search result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := searchRecorder.Close(); err != nil {
			slog.Warn("failed to close search result recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisOpts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	repo := repository.NewPlannerRepository(redisClient)

	classifier := status.NewClassifier()
	projector := projection.NewCalculator()
	aggregator := impact.NewAggregator(classifier)

	var paymentGateway domain.PaymentGateway
	if cfg.Payment.Enabled() {
		paymentGateway = payment.NewMidtransGateway(cfg.Payment.MidtransServerKey, cfg.Payment.Production)
		slog.Info("payment gateway initialized",
			slog.Bool("production", cfg.Payment.Production),
		)
	} else {
		slog.Warn("MIDTRANS_SERVER_KEY not set, premium checkout disabled")
	}

	dashboardService := dashboard.NewService(
		repo,
		classifier,
		projector,
		cfg.Planner.DefaultThreshold,
		plannerMetrics,
	)
	syncService := syncservice.NewService(
		repo,
		taskQueue,
		classifier,
		cfg.Planner.DefaultThreshold,
		plannerMetrics,
	)
	plannerService := planner.NewService(
		repo,
		aggregator,
		cfg.Planner.DefaultThreshold,
		cfg.Planner.WindowSizes,
		cfg.Planner.WeeksAhead,
		cfg.Planner.SuggestionLimit,
	)
	billingService := billing.NewService(
		repo,
		paymentGateway,
		cfg.Payment.MonthlyPrice,
		cfg.Payment.YearlyPrice,
	)

	dashboardHandler := handler.NewDashboardHandler(dashboardService, plannerMetrics)
	plannerHandler := handler.NewPlannerHandler(plannerService, cfg, plannerMetrics, searchRecorder)
	syncHandler := handler.NewSyncHandler(syncService)
	settingsHandler := handler.NewSettingsHandler(repo, cfg.Planner.DefaultThreshold)
	billingHandler := handler.NewBillingHandler(billingService)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      logging.Module("attendance-planner"),
		TracerName:  "github.com/erphive/attendance-planner/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		students := v1.Group("/students/:student_id", auth.StudentGuard(cfg.Auth.JWTSecret))
		{
			students.GET("/dashboard", dashboardHandler.HandleGetDashboard)
			students.POST("/impact", plannerHandler.HandleRangeImpact)
			students.GET("/vacations", plannerHandler.HandleSuggestVacations)
			students.PUT("/subjects", syncHandler.HandleSyncSubjects)
			students.GET("/timetable", settingsHandler.HandleGetTimetable)
			students.PUT("/timetable", settingsHandler.HandlePutTimetable)
			students.GET("/thresholds", settingsHandler.HandleGetThresholds)
			students.PUT("/thresholds", settingsHandler.HandlePutThresholds)
			students.POST("/checkout", billingHandler.HandleCheckout)
		}

		// Gateway callbacks authenticate by signature, not bearer token.
		v1.POST("/payments/notifications", billingHandler.HandlePaymentNotification)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("default_threshold", cfg.Planner.DefaultThreshold),
			slog.String("window_sizes", joinInts(cfg.Planner.WindowSizes)),
			slog.Int("weeks_ahead", cfg.Planner.WeeksAhead),
			slog.Int("suggestion_limit", cfg.Planner.SuggestionLimit),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}
