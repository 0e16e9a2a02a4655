// internal/universe/graph_test.go
package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

func sampleData() *models.LiveData {
	return &models.LiveData{
		Entities: map[string]models.EntityStatus{
			"AFK":  {HealthScore: 100, PendingItems: 1, Status: "Active"},
			"GAKP": {HealthScore: 50, PendingItems: 7, Status: "Degraded"},
		},
	}
}

func TestBuildNodes(t *testing.T) {
	graph := Build(sampleData())

	require.Len(t, graph.Nodes, len(registry.Codes)+1)

	hub := graph.Nodes[0]
	assert.Equal(t, "GANDI CORE", hub.ID)
	assert.Equal(t, float64(100), hub.Size)
	assert.Equal(t, registry.CategoryCore, hub.Category)

	byID := make(map[string]Node)
	for _, n := range graph.Nodes {
		byID[n.ID] = n
	}

	// size = 30 + health/100*40
	assert.Equal(t, float64(70), byID["AFK"].Size)
	assert.Equal(t, float64(50), byID["GAKP"].Size)

	// Entities absent from the document get the default health score.
	assert.Equal(t, float64(62), byID["GIFP"].Size)

	assert.Equal(t, registry.CategoryKenya, byID["AFK"].Category)
	assert.Equal(t, registry.CategoryUSA, byID["GAKP"].Category)
	assert.Equal(t, registry.CategoryHealthcare, byID["COMF"].Category)
	assert.Equal(t, "#00FF94", byID["AFK"].Color)
}

func TestBuildLinks(t *testing.T) {
	graph := Build(sampleData())

	type pair struct{ source, target string }
	links := make(map[pair]bool)
	for _, l := range graph.Links {
		links[pair{l.Source, l.Target}] = true
	}

	// Hub connects to every entity.
	for _, code := range registry.Codes {
		assert.True(t, links[pair{"GANDI CORE", code}], "hub link to %s missing", code)
	}

	// Kenya mesh.
	assert.True(t, links[pair{"AFK", "GAKC"}])

	// USA mesh excludes the HIPAA entity.
	assert.True(t, links[pair{"GAKP", "GIFP"}])
	assert.True(t, links[pair{"GAKP", "PRSL"}])
	assert.True(t, links[pair{"GIFP", "PRSL"}])
	for _, l := range graph.Links {
		if l.Source == "GANDI CORE" {
			continue
		}
		assert.NotEqual(t, "COMF", l.Source, "HIPAA entity on the mesh")
		assert.NotEqual(t, "COMF", l.Target, "HIPAA entity on the mesh")
	}

	// 6 hub links + 1 Kenya pair + 3 USA pairs.
	assert.Len(t, graph.Links, 10)
}

func TestOrbitSatellites(t *testing.T) {
	view, err := Orbit("GAKP", sampleData())
	require.NoError(t, err)

	assert.Equal(t, "GAK Properties", view.Center.Name)
	require.Len(t, view.Satellites, 3)

	health := view.Satellites[0]
	assert.Equal(t, "Health", health.Label)
	assert.Equal(t, "50%", health.Value)
	assert.Equal(t, "#FF0055", health.Color)

	pending := view.Satellites[1]
	assert.Equal(t, "7", pending.Value)
	assert.Equal(t, "#FF6B35", pending.Color)

	status := view.Satellites[2]
	assert.Equal(t, "Degraded", status.Value)
	assert.Equal(t, "#FF0055", status.Color)
}

func TestOrbitPendingColors(t *testing.T) {
	view, err := Orbit("AFK", sampleData())
	require.NoError(t, err)
	assert.Equal(t, "#FF6B35", view.Satellites[1].Color, "single pending item flags orange")
	assert.Equal(t, "#00FF94", view.Satellites[2].Color, "active status stays green")

	data := sampleData()
	st := data.Entities["AFK"]
	st.PendingItems = 0
	data.Entities["AFK"] = st

	view, err = Orbit("AFK", data)
	require.NoError(t, err)
	assert.Equal(t, "#00FF94", view.Satellites[1].Color, "empty backlog stays green")
}

func TestOrbitUnknownEntity(t *testing.T) {
	_, err := Orbit("NOPE", sampleData())
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnknownEntity, stdErr.Code)
}

func TestThresholdColorBands(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{95, "#00FF94"},
		{80, "#00FF94"},
		{79, "#FFD700"},
		{60, "#FFD700"},
		{59, "#FF0055"},
		{0, "#FF0055"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, thresholdColor(tt.score), "score %d", tt.score)
	}
}
