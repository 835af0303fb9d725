package schedule

import (
	"errors"
	"time"
)

var ErrClinicClosed = errors.New("clinic is closed")

// Clock supplies the current time. Injected so that hour gating is testable
// and never hard-codes time.Now at the call site.
type Clock func() time.Time

// Hours is the clinic operating window in 24h wall-clock hours. The window
// is half-open: hour Open is inside, hour Close is not.
type Hours struct {
	Open  int
	Close int
}

// Within reports whether t falls inside the operating window.
func (h Hours) Within(t time.Time) bool {
	hour := t.Hour()
	return hour >= h.Open && hour < h.Close
}

// HoursGate blocks mutating clinic actions outside operating hours.
type HoursGate struct {
	Hours Hours
	Now   Clock
}

func NewHoursGate(hours Hours, now Clock) *HoursGate {
	if now == nil {
		now = time.Now
	}
	return &HoursGate{Hours: hours, Now: now}
}

// Check fails with ErrClinicClosed when the current time is outside the
// operating window.
func (g *HoursGate) Check() error {
	if !g.Hours.Within(g.Now()) {
		return ErrClinicClosed
	}
	return nil
}
