package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrTimeOutsideDay = errors.New("time is outside the clinic day")

// SlotNumberer converts a wall-clock time into a 1-based sequential slot
// index on a fixed cadence from the clinic opening time. Appointment creation
// and historical backfill must use the same instance so that identical times
// always map to identical slot numbers.
type SlotNumberer struct {
	AnchorHour  int
	IntervalMin int
}

// DefaultSlotNumberer matches the clinic's canonical cadence: 15-minute
// slots anchored at 08:00, so 08:00->1, 08:15->2, ... 10:00->9.
var DefaultSlotNumberer = SlotNumberer{AnchorHour: 8, IntervalMin: 15}

// Number maps an HH:MM time to its slot index. Malformed input and times
// before the anchor have no slot and fail with ErrTimeOutsideDay; callers
// are expected to reject those upstream.
func (n SlotNumberer) Number(hhmm string) (int, error) {
	hour, minute, err := parseClock(hhmm)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTimeOutsideDay, err)
	}
	if hour < n.AnchorHour {
		return 0, ErrTimeOutsideDay
	}

	totalMinutes := (hour-n.AnchorHour)*60 + minute
	return totalMinutes/n.IntervalMin + 1, nil
}

// parseClock validates an HH:MM string in [00:00, 24:00).
func parseClock(hhmm string) (hour, minute int, err error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", hhmm)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", hhmm)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", hhmm)
	}
	return hour, minute, nil
}
