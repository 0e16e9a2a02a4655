// internal/server/handlers.go
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gandikediye-afk/gandi-command-center/internal/activity"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/health"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/internal/universe"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encoding failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady pings every backing service and reports per-service state.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ready := true
	services := make(map[string]string, len(s.probes))
	for name, probe := range s.probes {
		if err := probe.Ping(ctx); err != nil {
			ready = false
			services[name] = err.Error()
		} else {
			services[name] = "ok"
		}
	}

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, map[string]interface{}{
		"ready":    ready,
		"services": services,
	})
}

// overviewEntity is one row of the overview payload.
type overviewEntity struct {
	registry.Entity
	Status models.EntityStatus `json:"status"`
	Health health.Score        `json:"health"`
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	snap, err := s.live.Load(r.Context())
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}

	rows := make([]overviewEntity, 0, len(registry.Codes))
	for _, entity := range registry.All() {
		status := snap.Data.EntityStatusOrDefault(entity.Code)
		rows = append(rows, overviewEntity{
			Entity: entity,
			Status: status,
			Health: s.scorer.Score(status, snap.Data.EntityAlerts(entity.Code), snap.Data.LastUpdated),
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"lastUpdated":     snap.Data.LastUpdated,
		"stale":           snap.Stale,
		"source":          snap.Source,
		"entities":        rows,
		"emailSummary":    snap.Data.EmailSummary,
		"calendarSummary": snap.Data.CalendarSummary,
		"systemHealth":    snap.Data.SystemHealth,
		"alerts":          snap.Data.Alerts,
		"clock":           s.clock.Snapshot(),
	})
}

func (s *Server) handleEntities(w http.ResponseWriter, r *http.Request) {
	snap, err := s.live.Load(r.Context())
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}

	rows := make([]overviewEntity, 0, len(registry.Codes))
	for _, entity := range registry.All() {
		status := snap.Data.EntityStatusOrDefault(entity.Code)
		rows = append(rows, overviewEntity{
			Entity: entity,
			Status: status,
			Health: s.scorer.Score(status, snap.Data.EntityAlerts(entity.Code), snap.Data.LastUpdated),
		})
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleEntity(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	entity, ok := registry.Lookup(code)
	if !ok {
		s.errHandler.WriteError(w, errors.NewUnknownEntityError(code))
		return
	}

	snap, err := s.live.Load(r.Context())
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}

	status := snap.Data.EntityStatusOrDefault(code)
	alerts := snap.Data.EntityAlerts(code)

	var history []models.EntitySnapshot
	if s.snapshots != nil {
		history, err = s.snapshots.Recent(r.Context(), code, 24)
		if err != nil {
			// History is auxiliary; serve the entity without it.
			s.log.Warn("snapshot history unavailable", map[string]interface{}{
				"entity": code,
				"error":  err.Error(),
			})
			history = nil
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"entity":  entity,
		"status":  status,
		"health":  s.scorer.Score(status, alerts, snap.Data.LastUpdated),
		"alerts":  alerts,
		"history": history,
	})
}

func (s *Server) handleOrbit(w http.ResponseWriter, r *http.Request) {
	snap, err := s.live.Load(r.Context())
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}

	view, err := universe.Orbit(r.PathValue("code"), &snap.Data)
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUniverse(w http.ResponseWriter, r *http.Request) {
	snap, err := s.live.Load(r.Context())
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, universe.Build(&snap.Data))
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, _ = strconv.Atoi(raw)
	}

	result, err := s.activity.Search(r.Context(), activity.Query{
		Text:       r.URL.Query().Get("q"),
		EntityCode: r.URL.Query().Get("entity"),
		Size:       size,
	})
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.clock.Snapshot())
}

// handleCommand accepts either a quick command name or free-form voice text.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req models.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errHandler.WriteError(w, errors.NewUnknownCommandError(""))
		return
	}

	var result *models.CommandResult
	var err error
	switch {
	case req.Name != "":
		result, err = s.commands.Quick(r.Context(), req.Name)
	case req.Text != "":
		result, err = s.commands.Voice(r.Context(), req.Text)
	default:
		err = errors.NewUnknownCommandError("")
	}
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, result)
}

func (s *Server) handleCommandHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	records, err := s.commands.History(r.Context(), limit)
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	if records == nil {
		records = []models.CommandRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleRefresh drops the live data cache so the next read picks up a fresh
// document.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.live.Invalidate(r.Context()); err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// handleWebhookTest pings the n8n status workflow end to end.
func (s *Server) handleWebhookTest(w http.ResponseWriter, r *http.Request) {
	reply, err := s.webhooks.Dispatch(r.Context(), "gandi-status", map[string]interface{}{
		"source": "dashboard_test",
	})
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"response": reply,
	})
}

// handleMakeWebhook forwards a payload to a named Make.com webhook slot.
// Slots still carrying the pending placeholder fail with a typed error.
func (s *Server) handleMakeWebhook(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if r.Body != nil {
		// An empty body dispatches with no payload.
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	reply, err := s.webhooks.DispatchMake(r.Context(), r.PathValue("name"), payload)
	if err != nil {
		s.errHandler.WriteError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":   "dispatched",
		"response": reply,
	})
}
