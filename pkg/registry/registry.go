// pkg/registry/registry.go
package registry

// Entity describes one business in the portfolio.
type Entity struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Color    string `json:"color"`
	Glow     string `json:"glow"`
	Icon     string `json:"icon"`
	HIPAA    bool   `json:"hipaa,omitempty"`
}

// Graph categories, in legend order. Index matters: graph nodes reference
// categories by position.
const (
	CategoryCore = iota
	CategoryKenya
	CategoryUSA
	CategoryHealthcare
)

var CategoryNames = []string{"Core", "Kenya", "USA", "Healthcare"}

// Codes lists the six businesses in display order.
var Codes = []string{"AFK", "GAKP", "GIFP", "COMF", "GAKC", "PRSL"}

var entities = map[string]Entity{
	"AFK":  {Code: "AFK", Name: "Afro Farm Kenya", Location: "Kenya", Color: "#00FF94", Glow: "#00FF9455", Icon: "🌾"},
	"GAKP": {Code: "GAKP", Name: "GAK Properties", Location: "USA", Color: "#FF0055", Glow: "#FF005555", Icon: "🏢"},
	"GIFP": {Code: "GIFP", Name: "GIF Properties", Location: "USA", Color: "#FFD700", Glow: "#FFD70055", Icon: "🏠"},
	"COMF": {Code: "COMF", Name: "Comfort Services", Location: "USA", Color: "#00B8FF", Glow: "#00B8FF55", Icon: "💊", HIPAA: true},
	"GAKC": {Code: "GAKC", Name: "GAK Commodities", Location: "Kenya", Color: "#9D00FF", Glow: "#9D00FF55", Icon: "📦"},
	"PRSL": {Code: "PRSL", Name: "Personal", Location: "USA", Color: "#FF6B35", Glow: "#FF6B3555", Icon: "👤"},
}

// Lookup returns the entity for a code.
func Lookup(code string) (Entity, bool) {
	e, ok := entities[code]
	return e, ok
}

// All returns the entities in display order.
func All() []Entity {
	out := make([]Entity, 0, len(Codes))
	for _, code := range Codes {
		out = append(out, entities[code])
	}
	return out
}

// Category derives the graph category for an entity. HIPAA businesses are
// grouped as Healthcare regardless of location.
func Category(e Entity) int {
	switch {
	case e.HIPAA:
		return CategoryHealthcare
	case e.Location == "Kenya":
		return CategoryKenya
	default:
		return CategoryUSA
	}
}

// ByLocation returns the codes in a location, excluding HIPAA entities when
// skipHIPAA is set. Used for the intra-region graph mesh, which must not
// attach healthcare nodes.
func ByLocation(location string, skipHIPAA bool) []string {
	var out []string
	for _, code := range Codes {
		e := entities[code]
		if e.Location != location {
			continue
		}
		if skipHIPAA && e.HIPAA {
			continue
		}
		out = append(out, code)
	}
	return out
}
