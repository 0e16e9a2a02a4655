// internal/models/command.go
package models

import "time"

// CommandRequest is the API payload for quick and voice commands. Exactly one
// of Name or Text must be set: Name selects a registered quick command, Text
// is a free-form voice command forwarded to the commander endpoint.
type CommandRequest struct {
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// CommandRecord is what the dispatcher stores in the recent-command history.
type CommandRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Endpoint   string    `json:"endpoint"`
	Source     string    `json:"source"`
	Succeeded  bool      `json:"succeeded"`
	Error      string    `json:"error,omitempty"`
	Dispatched time.Time `json:"dispatched"`
}

// CommandResult is returned to the API caller.
type CommandResult struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Response map[string]interface{} `json:"response,omitempty"`
}
