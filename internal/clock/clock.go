// internal/clock/clock.go
package clock

import "time"

// Fixed offsets, matching how the dashboard has always displayed the two
// home bases: Kenya runs on EAT (UTC+3) year-round, Minneapolis is shown
// as CST (UTC-6).
const (
	kenyaOffset       = 3 * time.Hour
	minneapolisOffset = -6 * time.Hour
)

// Clock reports wall-clock time for the two operating regions. Now is
// injectable for tests; the zero value is not usable, construct with New.
type Clock struct {
	now func() time.Time
}

func New() *Clock {
	return &Clock{now: time.Now}
}

func NewAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// KenyaTime returns the current time in Kenya (EAT = UTC+3).
func (c *Clock) KenyaTime() string {
	return c.now().UTC().Add(kenyaOffset).Format("03:04 PM")
}

// MinneapolisTime returns the current time in Minneapolis (CST = UTC-6).
func (c *Clock) MinneapolisTime() string {
	return c.now().UTC().Add(minneapolisOffset).Format("03:04 PM")
}

// KenyaWindowActive reports whether we're in the Kenya Window
// (6-9 AM CST = 3-6 PM Kenya), the best time to call the farm team.
func (c *Clock) KenyaWindowActive() bool {
	cstHour := c.now().UTC().Add(minneapolisOffset).Hour()
	return 6 <= cstHour && cstHour < 9
}

// Info is the clock payload served by the API.
type Info struct {
	Minneapolis string `json:"minneapolis"`
	Kenya       string `json:"kenya"`
	KenyaWindow bool   `json:"kenyaWindow"`
}

func (c *Clock) Snapshot() Info {
	return Info{
		Minneapolis: c.MinneapolisTime(),
		Kenya:       c.KenyaTime(),
		KenyaWindow: c.KenyaWindowActive(),
	}
}
