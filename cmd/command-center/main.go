// cmd/command-center/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/gandikediye-afk/gandi-command-center/internal/activity"
	"github.com/gandikediye-afk/gandi-command-center/internal/clock"
	"github.com/gandikediye-afk/gandi-command-center/internal/command"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/aws"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/observability"
	"github.com/gandikediye-afk/gandi-command-center/internal/health"
	"github.com/gandikediye-afk/gandi-command-center/internal/livedata"
	"github.com/gandikediye-afk/gandi-command-center/internal/notify"
	"github.com/gandikediye-afk/gandi-command-center/internal/server"
	"github.com/gandikediye-afk/gandi-command-center/internal/snapshot"
	"github.com/gandikediye-afk/gandi-command-center/internal/webhook"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting command center...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("command-center")
	defer obs.Shutdown()

	tracing, err := observability.NewTracing("command-center", cfg.Observability.JaegerEndpoint)
	if err != nil {
		zapLog.Warn("tracing init failed", zap.Error(err))
	} else {
		defer tracing.Shutdown()
	}

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Notification channels ---
	var emailSender notify.EmailSender
	var smsSender notify.SMSSender
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		if cfg.Notifications.Email.Enabled {
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Warn("ses client init failed, email alerts disabled", zap.Error(err))
			} else {
				emailSender = sesClient
			}
		}
		if cfg.Notifications.SMS.Enabled {
			snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Warn("sns client init failed, sms alerts disabled", zap.Error(err))
			} else {
				smsSender = snsClient
			}
		}
	}

	// --- Wire domain services ---
	liveStore := livedata.NewStore(redis, cfg.Dashboard, log)
	scorer := health.NewScorer()
	webhooks := webhook.NewClient(cfg.Webhooks, log)
	dispatcher := command.NewDispatcher(webhooks, redis, log)
	indexer := activity.NewIndexer(esClient, cfg.Dashboard.ActivityIndex, log)
	snapStore := snapshot.NewStore(pg)
	notifier := notify.NewNotifier(emailSender, smsSender, cfg.Notifications, log)

	worker := snapshot.NewWorker(
		liveStore,
		snapStore,
		indexer,
		notifier,
		time.Duration(cfg.Dashboard.RefreshInterval)*time.Millisecond,
		log,
	).WithRecorder(obs)

	workerCtx, stopWorker := context.WithCancel(ctx)
	go worker.Run(workerCtx)

	srv := server.New(cfg.Server, server.Deps{
		Live:      liveStore,
		Scorer:    scorer,
		Commands:  dispatcher,
		Activity:  indexer,
		Snapshots: snapStore,
		Webhooks:  webhooks,
		Clock:     clock.New(),
		Probes: map[string]server.Probe{
			"postgres": pg,
			"redis":    redis,
			"elasticsearch": server.ProbeFunc(func(ctx context.Context) error {
				return esClient.Ping()
			}),
		},
	}, log)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Command center stopped")
}
