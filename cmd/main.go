package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-jetlag/internal/config"
	"github.com/KasumiMercury/primind-jetlag/internal/domain"
	"github.com/KasumiMercury/primind-jetlag/internal/handler"
	"github.com/KasumiMercury/primind-jetlag/internal/health"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/circadian"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/gcal"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/lease"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/mailer"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/repository"
	"github.com/KasumiMercury/primind-jetlag/internal/infra/sweeprecorder"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/logging"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/metrics"
	"github.com/KasumiMercury/primind-jetlag/internal/observability/middleware"
	"github.com/KasumiMercury/primind-jetlag/internal/service/calendarsync"
	"github.com/KasumiMercury/primind-jetlag/internal/service/dispatch"
	"github.com/KasumiMercury/primind-jetlag/internal/service/emailschedule"
	"github.com/KasumiMercury/primind-jetlag/internal/service/reconcile"
	"github.com/KasumiMercury/primind-jetlag/internal/service/trip"
	"github.com/KasumiMercury/primind-jetlag/internal/worker"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("jetlag")

func main() {
	os.Exit(run())
}

func run() int {
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

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	dispatchMetrics, err := metrics.NewDispatchMetrics()
	if err != nil {
		slog.Error("failed to initialize dispatch metrics", slog.String("error", err.Error()))
		return 1
	}

	calendarMetrics, err := metrics.NewCalendarMetrics()
	if err != nil {
		slog.Error("failed to initialize calendar metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB locally, BigQuery under gcloud
	recorder, err := sweeprecorder.NewRecorder(ctx, sweeprecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize sweep recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close sweep recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "db.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
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

	renderer, err := mailer.NewRenderer()
	if err != nil {
		slog.Error("failed to parse email templates", slog.String("error", err.Error()))
		return 1
	}

	tripRepo := repository.NewTripRepository(db)
	userRepo := repository.NewUserRepository(db)
	emailRepo := repository.NewEmailScheduleRepository(db)
	syncRepo := repository.NewCalendarSyncRepository(db)
	locker := lease.NewRedisLocker(redisClient)

	if !cfg.Calendar.Enabled() {
		slog.Warn("GOOGLE_CLIENT_ID not set, calendar sync will fail for every user")
	}
	calendarProvider := gcal.NewProvider(gcal.ProviderConfig{
		ClientID:     cfg.Calendar.ClientID,
		ClientSecret: cfg.Calendar.ClientSecret,
		CalendarID:   cfg.Calendar.CalendarID,
		Endpoint:     cfg.Calendar.Endpoint,
	})

	emailScheduler := emailschedule.NewService(emailRepo, taskQueue)
	tripService := trip.NewService(tripRepo, circadian.NewClient(cfg.CircadianURL, cfg.CircadianTimeout), emailScheduler)

	reconciler := reconcile.NewService(
		rate.NewLimiter(rate.Limit(cfg.Calendar.RequestsPerSecond), cfg.Calendar.Burst),
		cfg.Calendar.CallTimeout,
		calendarMetrics,
	)
	syncService := calendarsync.NewService(
		tripRepo,
		userRepo,
		syncRepo,
		calendarProvider,
		reconciler,
		locker,
		recorder,
		calendarMetrics,
		calendarsync.Config{
			LockTTL:    cfg.Calendar.LockTTL,
			StaleAfter: cfg.Calendar.StaleAfter,
		},
	)

	dispatchService := dispatch.NewService(
		emailRepo,
		tripRepo,
		userRepo,
		renderer,
		newMailer(cfg.Mail),
		locker,
		recorder,
		dispatchMetrics,
		dispatch.Config{
			BatchSize:       cfg.Dispatch.BatchSize,
			MaxAttempts:     cfg.Dispatch.MaxAttempts,
			ClaimTTL:        cfg.Dispatch.ClaimTTL,
			SendTimeout:     cfg.Dispatch.SendTimeout,
			MarkSentRetries: cfg.Dispatch.MarkSentRetries,
			LeaseTTL:        cfg.Dispatch.LeaseTTL,
			TripURLBase:     cfg.Dispatch.TripURLBase(),
		},
	)

	if cfg.Dispatch.CronSpec != "" {
		dispatchWorker, err := worker.NewDispatchWorker(dispatchService, cfg.Dispatch.CronSpec, cfg.Dispatch.CronTimeout)
		if err != nil {
			slog.Error("failed to schedule dispatch worker", slog.String("error", err.Error()))
			return 1
		}
		dispatchWorker.Start()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.Dispatch.CronTimeout)
			defer stopCancel()
			if err := dispatchWorker.Stop(stopCtx); err != nil {
				slog.Warn("dispatch worker did not stop cleanly", slog.String("error", err.Error()))
			}
		}()
	}

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     serviceModule,
		Worker:     true,
		TracerName: "github.com/KasumiMercury/primind-jetlag/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if route := c.FullPath(); route != "" {
				return route
			}
			return c.Request.URL.Path
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.Register(r, handler.Handlers{
		Trips:    handler.NewTripHandler(tripService),
		Calendar: handler.NewCalendarHandler(syncService),
		Dispatch: handler.NewDispatchHandler(dispatchService),
	})

	// Cloud Run forwards HTTP/2 without TLS
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("mail_provider", string(cfg.Mail.Provider)),
			slog.Bool("calendar_enabled", cfg.Calendar.Enabled()),
			slog.String("dispatch_cron", cfg.Dispatch.CronSpec),
		)
		serverErr <- srv.ListenAndServe()
	}()

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

func openDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := repository.Open(ctx, repository.Options{
		DSN:                cfg.DSN,
		MaxOpenConns:       cfg.MaxOpenConns,
		MaxIdleConns:       cfg.MaxIdleConns,
		ConnMaxLifetime:    cfg.ConnMaxLifetime,
		SlowQueryThreshold: cfg.SlowQueryThreshold,
		Logger:             slog.Default(),
	})
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			_ = repository.Close(db)
			return nil, err
		}
	}

	slog.Info("database connected", slog.Bool("auto_migrate", cfg.AutoMigrate))

	return db, nil
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		PoolSize:    cfg.PoolSize,
		DialTimeout: cfg.DialTimeout,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))

	return client, nil
}

func newMailer(cfg *config.MailConfig) domain.Mailer {
	if cfg.Provider == config.MailProviderResend {
		return mailer.NewResendMailer(mailer.ResendConfig{
			APIKey:  cfg.ResendAPIKey,
			From:    cfg.From,
			BaseURL: cfg.ResendBaseURL,
			Timeout: cfg.Timeout,
		})
	}

	slog.Warn("MAIL_PROVIDER is log, flight-day emails are only logged")
	return mailer.NewLogMailer()
}
