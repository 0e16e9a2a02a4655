// internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gandikediye-afk/gandi-command-center/internal/activity"
	"github.com/gandikediye-afk/gandi-command-center/internal/clock"
	"github.com/gandikediye-afk/gandi-command-center/internal/command"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/metrics"
	"github.com/gandikediye-afk/gandi-command-center/internal/health"
	"github.com/gandikediye-afk/gandi-command-center/internal/livedata"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/internal/snapshot"
	"github.com/gandikediye-afk/gandi-command-center/internal/webhook"
)

// The handler-facing slices of the domain services. Concrete implementations
// are wired in by the composition root; tests substitute fakes.
type liveLoader interface {
	Load(ctx context.Context) (*livedata.Snapshot, error)
	Invalidate(ctx context.Context) error
}

type commandDispatcher interface {
	Quick(ctx context.Context, name string) (*models.CommandResult, error)
	Voice(ctx context.Context, text string) (*models.CommandResult, error)
	History(ctx context.Context, limit int) ([]models.CommandRecord, error)
}

type activitySearcher interface {
	Search(ctx context.Context, q activity.Query) (*activity.Result, error)
}

type snapshotHistorian interface {
	Recent(ctx context.Context, entityCode string, limit int) ([]models.EntitySnapshot, error)
}

type webhookTester interface {
	Dispatch(ctx context.Context, endpoint string, payload map[string]interface{}) (map[string]interface{}, error)
	DispatchMake(ctx context.Context, name string, payload map[string]interface{}) (map[string]interface{}, error)
}

// Probe is a readiness check on a backing service.
type Probe interface {
	Ping(ctx context.Context) error
}

// ProbeFunc adapts a plain function to a Probe.
type ProbeFunc func(ctx context.Context) error

func (f ProbeFunc) Ping(ctx context.Context) error { return f(ctx) }

// Server is the dashboard HTTP API.
type Server struct {
	cfg        config.ServerConfig
	log        logger.Logger
	errHandler *errors.ErrorHandler

	live      liveLoader
	scorer    *health.Scorer
	commands  commandDispatcher
	activity  activitySearcher
	snapshots snapshotHistorian
	webhooks  webhookTester
	clock     *clock.Clock
	probes    map[string]Probe

	httpServer *http.Server
}

// Deps carries the wired domain services into the server.
type Deps struct {
	Live      *livedata.Store
	Scorer    *health.Scorer
	Commands  *command.Dispatcher
	Activity  *activity.Indexer
	Snapshots *snapshot.Store
	Webhooks  *webhook.Client
	Clock     *clock.Clock
	Probes    map[string]Probe
}

func New(cfg config.ServerConfig, deps Deps, log logger.Logger) *Server {
	s := &Server{
		cfg:        cfg,
		log:        log,
		errHandler: errors.NewErrorHandler(log),
		live:       deps.Live,
		scorer:     deps.Scorer,
		commands:   deps.Commands,
		activity:   deps.Activity,
		snapshots:  deps.Snapshots,
		webhooks:   deps.Webhooks,
		clock:      deps.Clock,
		probes:     deps.Probes,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/entities", s.handleEntities)
	mux.HandleFunc("GET /api/entities/{code}", s.handleEntity)
	mux.HandleFunc("GET /api/entities/{code}/orbit", s.handleOrbit)
	mux.HandleFunc("GET /api/universe", s.handleUniverse)
	mux.HandleFunc("GET /api/activity", s.handleActivity)
	mux.HandleFunc("GET /api/clock", s.handleClock)
	mux.HandleFunc("POST /api/commands", s.handleCommand)
	mux.HandleFunc("GET /api/commands/recent", s.handleCommandHistory)
	mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/webhooks/test", s.handleWebhookTest)
	mux.HandleFunc("POST /api/webhooks/make/{name}", s.handleMakeWebhook)

	return s.withRequestLogging(mux)
}

// withRequestLogging wraps the mux with zap access logging and the request
// duration histogram.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		// Label by matched route pattern so path parameters do not
		// explode metric cardinality.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(duration.Seconds())

		s.log.Info("request completed", map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": duration.String(),
		})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.log.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
