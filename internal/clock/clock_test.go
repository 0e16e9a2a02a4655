// internal/clock/clock_test.go
package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixed(hourUTC int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.January, 16, hourUTC, 30, 0, 0, time.UTC)
	}
}

func TestKenyaTime(t *testing.T) {
	c := NewAt(fixed(12)) // 12:30 UTC -> 15:30 EAT
	assert.Equal(t, "03:30 PM", c.KenyaTime())
}

func TestMinneapolisTime(t *testing.T) {
	c := NewAt(fixed(12)) // 12:30 UTC -> 06:30 CST
	assert.Equal(t, "06:30 AM", c.MinneapolisTime())
}

func TestKenyaWindowActive(t *testing.T) {
	tests := []struct {
		name    string
		hourUTC int
		active  bool
	}{
		{"before window (5 AM CST)", 11, false},
		{"window opens (6 AM CST)", 12, true},
		{"mid window (8 AM CST)", 14, true},
		{"window closes (9 AM CST)", 15, false},
		{"evening (6 PM CST)", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAt(fixed(tt.hourUTC))
			assert.Equal(t, tt.active, c.KenyaWindowActive())
		})
	}
}

func TestSnapshot(t *testing.T) {
	c := NewAt(fixed(13))
	info := c.Snapshot()
	assert.Equal(t, "07:30 AM", info.Minneapolis)
	assert.Equal(t, "04:30 PM", info.Kenya)
	assert.True(t, info.KenyaWindow)
}
