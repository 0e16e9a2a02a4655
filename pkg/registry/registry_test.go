// pkg/registry/registry_test.go
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_OrderAndCount(t *testing.T) {
	all := All()
	require.Len(t, all, 6)

	codes := make([]string, 0, len(all))
	for _, e := range all {
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []string{"AFK", "GAKP", "GIFP", "COMF", "GAKC", "PRSL"}, codes)
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("COMF")
	require.True(t, ok)
	assert.Equal(t, "Comfort Services", e.Name)
	assert.True(t, e.HIPAA)

	_, ok = Lookup("NOPE")
	assert.False(t, ok)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"AFK", CategoryKenya},
		{"GAKC", CategoryKenya},
		{"GAKP", CategoryUSA},
		{"GIFP", CategoryUSA},
		{"PRSL", CategoryUSA},
		{"COMF", CategoryHealthcare},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e, ok := Lookup(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.expected, Category(e))
		})
	}
}

func TestByLocation(t *testing.T) {
	assert.Equal(t, []string{"AFK", "GAKC"}, ByLocation("Kenya", false))

	// The USA mesh excludes the healthcare entity.
	assert.Equal(t, []string{"GAKP", "GIFP", "PRSL"}, ByLocation("USA", true))
	assert.Equal(t, []string{"GAKP", "GIFP", "COMF", "PRSL"}, ByLocation("USA", false))
}
