// internal/livedata/store.go
package livedata

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/metrics"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/validation"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

const cacheKey = "gandi:livedata:v1"

// Snapshot is a loaded live data document plus its provenance. Stale is set
// when the data file is missing and defaults were served instead.
type Snapshot struct {
	Data   models.LiveData
	Source string
	Stale  bool
}

// Load sources
const (
	SourceCache    = "cache"
	SourceFile     = "file"
	SourceDefaults = "defaults"
)

// Store reads the live data document cache-first: Redis, then the data file,
// then hydrated defaults when the file does not exist yet.
type Store struct {
	redis    *database.RedisClient
	log      logger.Logger
	dataFile string
	cacheTTL time.Duration
}

func NewStore(redis *database.RedisClient, cfg config.DashboardConfig, log logger.Logger) *Store {
	return &Store{
		redis:    redis,
		log:      log,
		dataFile: cfg.DataFile,
		cacheTTL: time.Duration(cfg.CacheTTL) * time.Millisecond,
	}
}

// Load returns the current live data document. Cache misses fall through to
// the data file; cache errors are logged and treated as misses so a Redis
// outage never takes the dashboard down.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, cacheKey)
		if err == nil {
			var data models.LiveData
			if jsonErr := json.Unmarshal([]byte(raw), &data); jsonErr == nil {
				metrics.LiveDataLoads.WithLabelValues(SourceCache).Inc()
				return &Snapshot{Data: hydrate(data), Source: SourceCache}, nil
			}
			s.log.Warn("discarding unreadable cache entry", map[string]interface{}{
				"key": cacheKey,
			})
		} else if err != redis.Nil {
			s.log.Warn("live data cache read failed", map[string]interface{}{
				"key":   cacheKey,
				"error": err.Error(),
			})
		}
	}

	snapshot, err := s.loadFromFile(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *Store) loadFromFile(ctx context.Context) (*Snapshot, error) {
	raw, err := os.ReadFile(s.dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			// The automation pipeline has not produced a document yet.
			// Serve defaults and flag the snapshot as stale.
			metrics.LiveDataLoads.WithLabelValues(SourceDefaults).Inc()
			s.log.Info("live data file missing, serving defaults", map[string]interface{}{
				"path": s.dataFile,
			})
			return &Snapshot{Data: hydrate(models.LiveData{}), Source: SourceDefaults, Stale: true}, nil
		}
		return nil, errors.NewLiveDataReadFailedError(s.dataFile, err)
	}

	result, err := validation.ValidateLiveData(raw)
	if err != nil {
		return nil, errors.NewLiveDataInvalidError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewLiveDataInvalidError(validation.FormatErrors(result))
	}

	var data models.LiveData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.NewLiveDataInvalidError(err.Error())
	}

	s.cache(ctx, raw)
	metrics.LiveDataLoads.WithLabelValues(SourceFile).Inc()
	return &Snapshot{Data: hydrate(data), Source: SourceFile}, nil
}

func (s *Store) cache(ctx context.Context, raw []byte) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.redis.Set(ctx, cacheKey, raw, s.cacheTTL); err != nil {
		s.log.Warn("live data cache write failed", map[string]interface{}{
			"key":   cacheKey,
			"error": err.Error(),
		})
	}
}

// Invalidate drops the cached document so the next Load rereads the file.
func (s *Store) Invalidate(ctx context.Context) error {
	if s.redis == nil {
		return nil
	}
	if err := s.redis.Del(ctx, cacheKey); err != nil {
		return errors.NewCacheReadFailedError(err)
	}
	return nil
}

// hydrate fills in default status blocks for registry entities the document
// does not mention, so downstream consumers never see a missing entity.
func hydrate(data models.LiveData) models.LiveData {
	if data.Entities == nil {
		data.Entities = make(map[string]models.EntityStatus, len(registry.Codes))
	}
	for _, code := range registry.Codes {
		if _, ok := data.Entities[code]; !ok {
			data.Entities[code] = models.EntityStatus{
				HealthScore:    models.DefaultHealthScore,
				Status:         models.DefaultStatus,
				RecentActivity: models.DefaultActivityNote,
			}
		}
	}
	return data
}
