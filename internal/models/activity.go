// internal/models/activity.go
package models

import "time"

// ActivityEvent is one indexed activity line for an entity.
type ActivityEvent struct {
	EntityCode string    `json:"entityCode"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	ObservedAt time.Time `json:"observedAt"`
}

// EntitySnapshot is one persisted health snapshot row.
type EntitySnapshot struct {
	ID             int64     `json:"id,omitempty"`
	EntityCode     string    `json:"entityCode"`
	HealthScore    int       `json:"healthScore"`
	PendingItems   int       `json:"pendingItems"`
	Status         string    `json:"status"`
	RecentActivity string    `json:"recentActivity"`
	CapturedAt     time.Time `json:"capturedAt"`
}
