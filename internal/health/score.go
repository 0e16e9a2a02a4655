// internal/health/score.go
package health

import (
	"time"

	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

// Score is the health assessment for one entity. Reported is what the live
// data document carries (kept authoritative when present), Computed is the
// locally derived score.
type Score struct {
	Reported  int       `json:"reported"`
	Computed  int       `json:"computed"`
	Level     string    `json:"level"`
	Breakdown Breakdown `json:"breakdown"`
}

type Breakdown struct {
	Backlog   int `json:"backlog"`
	Alerts    int `json:"alerts"`
	Activity  int `json:"activity"`
	Freshness int `json:"freshness"`
}

type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

func NewScorerAt(now func() time.Time) *Scorer {
	return &Scorer{now: now}
}

// Score derives the entity health from live data facets. Weighted average:
// Backlog(30%) + Alerts(25%) + Activity(25%) + Freshness(20%).
func (s *Scorer) Score(status models.EntityStatus, alerts []models.Alert, lastUpdated string) Score {
	backlog := s.backlogScore(status.PendingItems)
	alertScore := s.alertScore(alerts)
	activity := s.activityScore(status)
	freshness := s.freshnessScore(lastUpdated)

	computed := int(
		float64(backlog)*0.30 +
			float64(alertScore)*0.25 +
			float64(activity)*0.25 +
			float64(freshness)*0.20)
	computed = clamp(computed, 0, 100)

	reported := status.HealthScore
	if reported <= 0 {
		reported = computed
	}
	reported = clamp(reported, 0, 100)

	return Score{
		Reported: reported,
		Computed: computed,
		Level:    Classify(reported),
		Breakdown: Breakdown{
			Backlog:   backlog,
			Alerts:    alertScore,
			Activity:  activity,
			Freshness: freshness,
		},
	}
}

// backlogScore starts at 100 and loses 10 points per pending item.
func (s *Scorer) backlogScore(pending int) int {
	if pending < 0 {
		pending = 0
	}
	return clamp(100-pending*10, 0, 100)
}

// alertScore starts at 100; each alert costs 20 points, high severity 40.
func (s *Scorer) alertScore(alerts []models.Alert) int {
	score := 100
	for _, a := range alerts {
		if a.Severity == models.SeverityHigh {
			score -= 40
		} else {
			score -= 20
		}
	}
	return clamp(score, 0, 100)
}

func (s *Scorer) activityScore(status models.EntityStatus) int {
	if status.Status != models.DefaultStatus {
		return 20
	}
	score := 70
	if status.RecentActivity != "" && status.RecentActivity != models.DefaultActivityNote {
		score += 30
	}
	return clamp(score, 0, 100)
}

// freshnessScore grades the age of the live data document. Unparseable
// timestamps get a neutral 50 rather than failing the whole assessment.
func (s *Scorer) freshnessScore(lastUpdated string) int {
	if lastUpdated == "" {
		return 10
	}

	ts, err := parseTimestamp(lastUpdated)
	if err != nil {
		return 50
	}

	age := s.now().UTC().Sub(ts.UTC())
	switch {
	case age <= 10*time.Minute:
		return 100
	case age <= time.Hour:
		return 70
	case age <= 24*time.Hour:
		return 40
	default:
		return 10
	}
}

func parseTimestamp(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	var err error
	var ts time.Time
	for _, layout := range layouts {
		ts, err = time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// Classify maps a score to its qualification level.
func Classify(score int) string {
	switch {
	case score >= 81:
		return "excellent"
	case score >= 61:
		return "high"
	case score >= 41:
		return "medium"
	default:
		return "low"
	}
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
