// internal/models/livedata.go
package models

// LiveData is the document the automation pipeline writes for the dashboard.
// All sections are optional; the reader hydrates defaults for anything missing.
type LiveData struct {
	LastUpdated     string                  `json:"last_updated,omitempty"`
	Entities        map[string]EntityStatus `json:"entities,omitempty"`
	EmailSummary    EmailSummary            `json:"email_summary,omitempty"`
	CalendarSummary CalendarSummary         `json:"calendar_summary,omitempty"`
	SystemHealth    SystemHealth            `json:"system_health,omitempty"`
	Alerts          AlertSummary            `json:"alerts,omitempty"`
}

// EntityStatus is the per-business section of the live data document.
type EntityStatus struct {
	HealthScore    int    `json:"health_score"`
	PendingItems   int    `json:"pending_items"`
	Status         string `json:"status"`
	RecentActivity string `json:"recent_activity"`
}

type EmailSummary struct {
	UnreadCount    int             `json:"unread_count"`
	PriorityEmails []PriorityEmail `json:"priority_emails,omitempty"`
}

type PriorityEmail struct {
	Subject  string `json:"subject"`
	From     string `json:"from"`
	Priority string `json:"priority"`
	Entity   string `json:"entity,omitempty"`
}

type CalendarSummary struct {
	EventsToday int `json:"events_today"`
}

type SystemHealth struct {
	PendingTasks int `json:"pending_tasks"`
}

type AlertSummary struct {
	Count int     `json:"count"`
	Items []Alert `json:"items,omitempty"`
}

type Alert struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Entity   string `json:"entity,omitempty"`
}

// Alert severities
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Default entity status when the live data file has no section for an entity.
const (
	DefaultHealthScore  = 80
	DefaultStatus       = "Active"
	DefaultActivityNote = "No recent activity"
)

// EntityStatusOrDefault returns the status block for code, falling back to
// the hydrated default when the document carries none.
func (d *LiveData) EntityStatusOrDefault(code string) EntityStatus {
	if d != nil && d.Entities != nil {
		if st, ok := d.Entities[code]; ok {
			return st
		}
	}
	return EntityStatus{
		HealthScore:    DefaultHealthScore,
		Status:         DefaultStatus,
		RecentActivity: DefaultActivityNote,
	}
}

// EntityAlerts returns the alerts attributed to a single entity.
func (d *LiveData) EntityAlerts(code string) []Alert {
	if d == nil {
		return nil
	}
	var out []Alert
	for _, a := range d.Alerts.Items {
		if a.Entity == code {
			out = append(out, a)
		}
	}
	return out
}
