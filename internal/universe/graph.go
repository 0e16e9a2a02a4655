// internal/universe/graph.go
package universe

import (
	"fmt"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
	"github.com/gandikediye-afk/gandi-command-center/pkg/registry"
)

// Node is one vertex of the business universe graph.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Size     float64 `json:"size"`
	Color    string  `json:"color"`
	Category int     `json:"category"`
	Icon     string  `json:"icon,omitempty"`
}

// Link connects two nodes by ID.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the full universe layout: hub, entity nodes, and regional meshes.
type Graph struct {
	Nodes      []Node   `json:"nodes"`
	Links      []Link   `json:"links"`
	Categories []string `json:"categories"`
}

const (
	hubID   = "GANDI CORE"
	hubSize = 100

	entityBaseSize  = 30
	entityScaleSize = 40
)

// Build assembles the universe graph from the live data document. The hub
// connects to every entity, and entities within a region form a mesh. HIPAA
// businesses stay off the regional mesh and only link to the hub.
func Build(data *models.LiveData) Graph {
	nodes := make([]Node, 0, len(registry.Codes)+1)
	nodes = append(nodes, Node{
		ID:       hubID,
		Name:     hubID,
		Size:     hubSize,
		Color:    "#FFFFFF",
		Category: registry.CategoryCore,
	})

	links := make([]Link, 0, len(registry.Codes)*2)
	for _, entity := range registry.All() {
		status := data.EntityStatusOrDefault(entity.Code)
		nodes = append(nodes, Node{
			ID:       entity.Code,
			Name:     entity.Name,
			Size:     entityBaseSize + float64(status.HealthScore)/100*entityScaleSize,
			Color:    entity.Color,
			Category: registry.Category(entity),
			Icon:     entity.Icon,
		})
		links = append(links, Link{Source: hubID, Target: entity.Code})
	}

	links = append(links, mesh(registry.ByLocation("Kenya", false))...)
	links = append(links, mesh(registry.ByLocation("USA", true))...)

	return Graph{
		Nodes:      nodes,
		Links:      links,
		Categories: registry.CategoryNames,
	}
}

// mesh pairs every code with every later code in the slice.
func mesh(codes []string) []Link {
	var links []Link
	for i := 0; i < len(codes); i++ {
		for j := i + 1; j < len(codes); j++ {
			links = append(links, Link{Source: codes[i], Target: codes[j]})
		}
	}
	return links
}

// Satellite is one metric orbiting an entity in the detail view.
type Satellite struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// OrbitView is the per-entity detail layout: the entity at the center with
// its metrics as satellites.
type OrbitView struct {
	Center     Node        `json:"center"`
	Satellites []Satellite `json:"satellites"`
}

// Orbit builds the detail view for one entity code.
func Orbit(code string, data *models.LiveData) (*OrbitView, error) {
	entity, ok := registry.Lookup(code)
	if !ok {
		return nil, errors.NewUnknownEntityError(code)
	}

	status := data.EntityStatusOrDefault(code)

	return &OrbitView{
		Center: Node{
			ID:       entity.Code,
			Name:     entity.Name,
			Size:     hubSize,
			Color:    entity.Color,
			Category: registry.Category(entity),
			Icon:     entity.Icon,
		},
		Satellites: []Satellite{
			{
				Label: "Health",
				Value: fmt.Sprintf("%d%%", status.HealthScore),
				Color: thresholdColor(status.HealthScore),
			},
			{
				Label: "Pending",
				Value: fmt.Sprintf("%d", status.PendingItems),
				Color: pendingColor(status.PendingItems),
			},
			{
				Label: "Status",
				Value: status.Status,
				Color: statusColor(status.Status),
			},
		},
	}, nil
}

// thresholdColor grades a percentage metric green/amber/red.
func thresholdColor(score int) string {
	switch {
	case score >= 80:
		return "#00FF94"
	case score >= 60:
		return "#FFD700"
	default:
		return "#FF0055"
	}
}

// pendingColor flags any backlog at all.
func pendingColor(pending int) string {
	if pending > 0 {
		return "#FF6B35"
	}
	return "#00FF94"
}

func statusColor(status string) string {
	if status == models.DefaultStatus {
		return "#00FF94"
	}
	return "#FF0055"
}
