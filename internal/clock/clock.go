// Package clock abstracts the host calendar so day-rollover logic can be
// tested against a pinned date.
package clock

import "time"

// DateLayout is the calendar-date format stored in lastPlayedDate.
const DateLayout = "2006-01-02"

// Clock supplies the current wall-clock time. It is the only source of
// non-determinism besides the seeded stream.
type Clock interface {
	Now() time.Time
}

// System reads the real local clock.
type System struct{}

func (System) Now() time.Time { return time.Now().In(time.Local) }

// Fixed is pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today formats the clock's current date.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}
