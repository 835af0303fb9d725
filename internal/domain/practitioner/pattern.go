package practitioner

import (
	"errors"
	"strings"
	"time"
)

// Pattern is a recurring weekly duty rule. Exactly two patterns exist:
// MWF (Monday/Wednesday/Friday) and TTH (Tuesday/Thursday).
type Pattern string

const (
	PatternMWF Pattern = "MWF"
	PatternTTH Pattern = "TTH"
)

var ErrInvalidPattern = errors.New("invalid schedule pattern")

// ParsePattern normalizes raw to a canonical Pattern. Matching is
// case-insensitive; anything other than mwf/tth fails with ErrInvalidPattern
// rather than defaulting.
func ParsePattern(raw string) (Pattern, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(PatternMWF):
		return PatternMWF, nil
	case string(PatternTTH):
		return PatternTTH, nil
	default:
		return "", ErrInvalidPattern
	}
}

// Valid reports whether p is one of the two known patterns.
func (p Pattern) Valid() bool {
	return p == PatternMWF || p == PatternTTH
}

// Weekdays returns the set of weekdays the pattern covers. Unknown patterns
// cover no days: a doctor with a missing or malformed pattern is simply never
// on duty by default.
func (p Pattern) Weekdays() map[time.Weekday]bool {
	switch p {
	case PatternMWF:
		return map[time.Weekday]bool{
			time.Monday:    true,
			time.Wednesday: true,
			time.Friday:    true,
		}
	case PatternTTH:
		return map[time.Weekday]bool{
			time.Tuesday:  true,
			time.Thursday: true,
		}
	default:
		return map[time.Weekday]bool{}
	}
}

// Covers reports whether the pattern puts a doctor on duty on the given weekday.
func (p Pattern) Covers(day time.Weekday) bool {
	return p.Weekdays()[day]
}

// DefaultPatternForRank picks the pattern for a newly registered doctor from
// their position among active doctors, alternating MWF/TTH so duty coverage
// stays balanced as staff grows. An explicitly requested pattern always takes
// precedence over this policy; see Service.Create.
func DefaultPatternForRank(rank int) Pattern {
	if rank%2 == 0 {
		return PatternMWF
	}
	return PatternTTH
}
