// internal/command/dispatcher_test.go
package command

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

type fakeWebhooks struct {
	endpoint string
	payload  map[string]interface{}
	reply    map[string]interface{}
	err      error
	calls    int
}

func (f *fakeWebhooks) Dispatch(ctx context.Context, endpoint string, payload map[string]interface{}) (map[string]interface{}, error) {
	f.calls++
	f.endpoint = endpoint
	f.payload = payload
	return f.reply, f.err
}

func newTestDispatcher(t *testing.T, webhooks *fakeWebhooks) (*Dispatcher, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	d := &Dispatcher{
		webhooks: webhooks,
		redis:    client,
		log:      logger.NewNoOpLogger(),
		now:      func() time.Time { return time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC) },
		newID:    func() string { return "cmd-1" },
	}
	return d, mr
}

func TestQuickCommandDispatch(t *testing.T) {
	webhooks := &fakeWebhooks{reply: map[string]interface{}{"status": "queued"}}
	d, mr := newTestDispatcher(t, webhooks)

	result, err := d.Quick(context.Background(), "morning_briefing")
	require.NoError(t, err)

	assert.Equal(t, "cmd-1", result.ID)
	assert.Equal(t, "morning-briefing", webhooks.endpoint)
	assert.Nil(t, webhooks.payload)
	assert.Equal(t, "queued", result.Response["status"])

	raws, err := mr.List(historyKey)
	require.NoError(t, err)
	require.Len(t, raws, 1)

	var record models.CommandRecord
	require.NoError(t, json.Unmarshal([]byte(raws[0]), &record))
	assert.Equal(t, "morning_briefing", record.Name)
	assert.Equal(t, "dashboard_quick", record.Source)
	assert.True(t, record.Succeeded)
}

func TestQuickCommandUnknownName(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeWebhooks{})

	_, err := d.Quick(context.Background(), "reboot_everything")
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnknownCommand, stdErr.Code)
}

func TestVoiceCommandGoesToCommander(t *testing.T) {
	webhooks := &fakeWebhooks{}
	d, _ := newTestDispatcher(t, webhooks)

	_, err := d.Voice(context.Background(), "  check farm status  ")
	require.NoError(t, err)

	assert.Equal(t, "claude-commander", webhooks.endpoint)
	assert.Equal(t, "check farm status", webhooks.payload["command"])
	assert.Equal(t, "api", webhooks.payload["source"])
}

func TestVoiceCommandEmptyText(t *testing.T) {
	d, _ := newTestDispatcher(t, &fakeWebhooks{})

	_, err := d.Voice(context.Background(), "   ")
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnknownCommand, stdErr.Code)
}

func TestFailedDispatchStillRecorded(t *testing.T) {
	webhooks := &fakeWebhooks{err: errors.NewWebhookSendFailedError("farm-status", fmt.Errorf("status 500"))}
	d, mr := newTestDispatcher(t, webhooks)

	_, err := d.Quick(context.Background(), "farm_status")
	require.Error(t, err)

	raws, listErr := mr.List(historyKey)
	require.NoError(t, listErr)
	require.Len(t, raws, 1)

	var record models.CommandRecord
	require.NoError(t, json.Unmarshal([]byte(raws[0]), &record))
	assert.False(t, record.Succeeded)
	assert.Contains(t, record.Error, "WEBHOOK_SEND_FAILED")
}

func TestHistoryTrimsToHundred(t *testing.T) {
	webhooks := &fakeWebhooks{}
	d, mr := newTestDispatcher(t, webhooks)

	ids := 0
	d.newID = func() string {
		ids++
		return fmt.Sprintf("cmd-%d", ids)
	}

	for i := 0; i < 120; i++ {
		_, err := d.Quick(context.Background(), "farm_status")
		require.NoError(t, err)
	}

	raws, err := mr.List(historyKey)
	require.NoError(t, err)
	assert.Len(t, raws, historyMax)

	records, err := d.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 10)
	// Newest first.
	assert.Equal(t, "cmd-120", records[0].ID)
}

func TestHistorySurvivesCorruptEntries(t *testing.T) {
	d, mr := newTestDispatcher(t, &fakeWebhooks{})

	mr.Lpush(historyKey, "not json")
	_, err := d.Quick(context.Background(), "calendar_today")
	require.NoError(t, err)

	records, err := d.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "calendar_today", records[0].Name)
}
