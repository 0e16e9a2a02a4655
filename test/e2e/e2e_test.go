// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gandikediye-afk/gandi-command-center/internal/activity"
	"github.com/gandikediye-afk/gandi-command-center/internal/clock"
	"github.com/gandikediye-afk/gandi-command-center/internal/command"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/health"
	"github.com/gandikediye-afk/gandi-command-center/internal/livedata"
	"github.com/gandikediye-afk/gandi-command-center/internal/server"
	"github.com/gandikediye-afk/gandi-command-center/internal/snapshot"
	"github.com/gandikediye-afk/gandi-command-center/internal/webhook"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

// requireE2E skips unless E2E_TESTS=true and the backing services from
// configs/config.yaml are reachable.
func requireE2E(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("E2E_TESTS") != "true" {
		t.Skip("set E2E_TESTS=true to run end-to-end tests")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestFullStack(t *testing.T) {
	cfg := requireE2E(t)
	log := logger.NewTestLogger(t)
	ctx := context.Background()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer pg.Close()
	if err := pg.Ping(ctx); err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}

	redisClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	if err := esClient.Ping(); err != nil {
		t.Skipf("elasticsearch not reachable: %v", err)
	}

	_, err = pg.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS entity_snapshots (
			id BIGSERIAL PRIMARY KEY,
			entity_code TEXT NOT NULL,
			health_score INT NOT NULL,
			pending_items INT NOT NULL,
			status TEXT NOT NULL,
			recent_activity TEXT NOT NULL,
			captured_at TIMESTAMPTZ NOT NULL
		)`)
	require.NoError(t, err)

	liveStore := livedata.NewStore(redisClient, cfg.Dashboard, log)
	snapStore := snapshot.NewStore(pg)
	indexer := activity.NewIndexer(esClient, cfg.Dashboard.ActivityIndex, log)
	webhooks := webhook.NewClient(cfg.Webhooks, log)
	dispatcher := command.NewDispatcher(webhooks, redisClient, log)

	t.Run("snapshot cycle persists all entities", func(t *testing.T) {
		worker := snapshot.NewWorker(liveStore, snapStore, indexer, nil, time.Minute, log)
		worker.ProcessCycle(ctx)

		for _, code := range registry.Codes {
			rows, err := snapStore.Recent(ctx, code, 1)
			require.NoError(t, err)
			require.NotEmpty(t, rows, "no snapshot for %s", code)
			assert.Equal(t, code, rows[0].EntityCode)
		}
	})

	t.Run("api serves overview", func(t *testing.T) {
		srv := server.New(cfg.Server, server.Deps{
			Live:      liveStore,
			Scorer:    health.NewScorer(),
			Commands:  dispatcher,
			Activity:  indexer,
			Snapshots: snapStore,
			Webhooks:  webhooks,
			Clock:     clock.New(),
		}, log)

		go srv.Start()
		defer srv.Shutdown(ctx)
		time.Sleep(200 * time.Millisecond)

		resp, err := http.Get("http://localhost:8501/api/overview")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var overview map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&overview))
		entities := overview["entities"].([]interface{})
		assert.Len(t, entities, len(registry.Codes))
	})
}
