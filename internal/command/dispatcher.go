// internal/command/dispatcher.go
package command

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/metrics"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/internal/webhook"
)

const (
	historyKey = "gandi:commands:recent"
	historyMax = 100

	commanderEndpoint = "claude-commander"
	voiceSource       = "api"
	quickSource       = "dashboard_quick"
)

// quickCommands maps the dashboard quick-action names to their n8n endpoints.
var quickCommands = map[string]string{
	"morning_briefing": "morning-briefing",
	"farm_status":      "farm-status",
	"urgent_emails":    "urgent-emails",
	"calendar_today":   "calendar-today",
}

// webhookDispatcher is the slice of the webhook client the dispatcher uses.
type webhookDispatcher interface {
	Dispatch(ctx context.Context, endpoint string, payload map[string]interface{}) (map[string]interface{}, error)
}

// Dispatcher routes dashboard commands to n8n and keeps a bounded history of
// recent dispatches in Redis.
type Dispatcher struct {
	webhooks webhookDispatcher
	redis    *database.RedisClient
	log      logger.Logger
	now      func() time.Time
	newID    func() string
}

func NewDispatcher(webhooks *webhook.Client, redis *database.RedisClient, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		webhooks: webhooks,
		redis:    redis,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// QuickCommands lists the registered quick-command names.
func QuickCommands() []string {
	return []string{"morning_briefing", "farm_status", "urgent_emails", "calendar_today"}
}

// Quick dispatches a registered quick command by name.
func (d *Dispatcher) Quick(ctx context.Context, name string) (*models.CommandResult, error) {
	endpoint, ok := quickCommands[name]
	if !ok {
		return nil, errors.NewUnknownCommandError(name)
	}
	return d.dispatch(ctx, name, endpoint, quickSource, nil)
}

// Voice forwards a free-form command to the commander workflow.
func (d *Dispatcher) Voice(ctx context.Context, text string) (*models.CommandResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.NewUnknownCommandError("")
	}
	payload := map[string]interface{}{
		"command": text,
		"source":  voiceSource,
	}
	return d.dispatch(ctx, text, commanderEndpoint, voiceSource, payload)
}

func (d *Dispatcher) dispatch(ctx context.Context, name, endpoint, source string, payload map[string]interface{}) (*models.CommandResult, error) {
	record := models.CommandRecord{
		ID:         d.newID(),
		Name:       name,
		Endpoint:   endpoint,
		Source:     source,
		Dispatched: d.now().UTC(),
	}

	metrics.CommandsDispatched.WithLabelValues(endpoint).Inc()

	reply, err := d.webhooks.Dispatch(ctx, endpoint, payload)
	record.Succeeded = err == nil
	if err != nil {
		record.Error = err.Error()
	}

	d.record(ctx, record)

	if err != nil {
		return nil, err
	}

	d.log.Info("command dispatched", map[string]interface{}{
		"id":       record.ID,
		"name":     name,
		"endpoint": endpoint,
		"source":   source,
	})

	return &models.CommandResult{
		ID:       record.ID,
		Name:     name,
		Response: reply,
	}, nil
}

// record appends the dispatch to the Redis history, trimmed to the newest
// hundred entries. History failures are logged but never fail the command.
func (d *Dispatcher) record(ctx context.Context, record models.CommandRecord) {
	if d.redis == nil {
		return
	}

	raw, err := json.Marshal(record)
	if err != nil {
		d.log.Warn("command record not serializable", map[string]interface{}{
			"id":    record.ID,
			"error": err.Error(),
		})
		return
	}

	pipe := d.redis.Client.Pipeline()
	pipe.LPush(ctx, historyKey, raw)
	pipe.LTrim(ctx, historyKey, 0, historyMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		d.log.Warn("command history write failed", map[string]interface{}{
			"id":    record.ID,
			"error": err.Error(),
		})
	}
}

// History returns up to limit recent command records, newest first.
func (d *Dispatcher) History(ctx context.Context, limit int) ([]models.CommandRecord, error) {
	if d.redis == nil {
		return nil, nil
	}
	if limit <= 0 || limit > historyMax {
		limit = historyMax
	}

	raws, err := d.redis.Client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.NewCacheReadFailedError(err)
	}

	records := make([]models.CommandRecord, 0, len(raws))
	for _, raw := range raws {
		var record models.CommandRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
