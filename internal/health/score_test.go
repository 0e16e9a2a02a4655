// internal/health/score_test.go
package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 16, 12, 0, 0, 0, time.UTC)
}

func TestScoreHealthyEntity(t *testing.T) {
	scorer := NewScorerAt(fixedNow)

	status := models.EntityStatus{
		HealthScore:    92,
		PendingItems:   1,
		Status:         models.DefaultStatus,
		RecentActivity: "Deployed irrigation update",
	}

	score := scorer.Score(status, nil, "2026-01-16T11:55:00Z")

	assert.Equal(t, 92, score.Reported)
	assert.Equal(t, "excellent", score.Level)
	assert.Equal(t, 90, score.Breakdown.Backlog)
	assert.Equal(t, 100, score.Breakdown.Alerts)
	assert.Equal(t, 100, score.Breakdown.Activity)
	assert.Equal(t, 100, score.Breakdown.Freshness)
	// 0.30*90 + 0.25*100 + 0.25*100 + 0.20*100 = 97
	assert.Equal(t, 97, score.Computed)
}

func TestScoreDegradedEntity(t *testing.T) {
	scorer := NewScorerAt(fixedNow)

	status := models.EntityStatus{
		HealthScore:    0,
		PendingItems:   8,
		Status:         "Degraded",
		RecentActivity: models.DefaultActivityNote,
	}
	alerts := []models.Alert{
		{Severity: models.SeverityHigh, Entity: "GAKP"},
		{Severity: models.SeverityMedium, Entity: "GAKP"},
	}

	score := scorer.Score(status, alerts, "2026-01-14T09:00:00Z")

	// Backlog 20, alerts 40, activity 20, freshness 10 => 0.30*20+0.25*40+0.25*20+0.20*10 = 23
	assert.Equal(t, 23, score.Computed)
	// Reported falls back to computed when the document carries no score.
	assert.Equal(t, 23, score.Reported)
	assert.Equal(t, "low", score.Level)
}

func TestFreshnessScoreBands(t *testing.T) {
	scorer := NewScorerAt(fixedNow)

	tests := []struct {
		name        string
		lastUpdated string
		expected    int
	}{
		{"five minutes old", "2026-01-16T11:55:00Z", 100},
		{"thirty minutes old", "2026-01-16T11:30:00Z", 70},
		{"six hours old", "2026-01-16T06:00:00Z", 40},
		{"two days old", "2026-01-14T12:00:00Z", 10},
		{"space separated layout", "2026-01-16 11:58:00", 100},
		{"unparseable", "yesterday-ish", 50},
		{"empty", "", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scorer.freshnessScore(tt.lastUpdated))
		})
	}
}

func TestClassifyLevels(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "excellent"},
		{81, "excellent"},
		{80, "high"},
		{61, "high"},
		{60, "medium"},
		{41, "medium"},
		{40, "low"},
		{0, "low"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.score), "score %d", tt.score)
	}
}

func TestAlertScoreClampsAtZero(t *testing.T) {
	scorer := NewScorerAt(fixedNow)

	alerts := []models.Alert{
		{Severity: models.SeverityHigh},
		{Severity: models.SeverityHigh},
		{Severity: models.SeverityHigh},
	}

	assert.Equal(t, 0, scorer.alertScore(alerts))
}
