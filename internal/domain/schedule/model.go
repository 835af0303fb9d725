package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/practitioner"
)

// DateLayout is the canonical calendar-date key used throughout scheduling.
const DateLayout = "2006-01-02"

// Override maps to the schedule_override table. It records a one-off manual
// correction of the on-duty doctor for a single date; at most one override
// exists per date and it strictly supersedes pattern derivation.
type Override struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	Date             string     `db:"date" json:"date"`
	OriginalDoctorID *uuid.UUID `db:"original_doctor_id" json:"original_doctor_id,omitempty"`
	AssignedDoctorID uuid.UUID  `db:"assigned_doctor_id" json:"assigned_doctor_id"`
	Reason           string     `db:"reason" json:"reason"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// AvailabilitySlot is one cell of the computed availability grid. It is
// derived on every query from doctors, overrides and appointment existence,
// and never persisted.
type AvailabilitySlot struct {
	DoctorID        uuid.UUID             `json:"doctor_id"`
	DoctorName      string                `json:"doctor_name"`
	Date            string                `json:"date"`
	Time            string                `json:"time"`
	IsAvailable     bool                  `json:"is_available"`
	SchedulePattern *practitioner.Pattern `json:"schedule_pattern,omitempty"`
}

// ScheduleBlock is the day-level counterpart of the availability grid: one
// block per (doctor, date) the doctor is on duty, with that date's booked
// appointment count. Used for calendar overview rendering.
type ScheduleBlock struct {
	DoctorID         uuid.UUID             `json:"doctor_id"`
	DoctorName       string                `json:"doctor_name"`
	Date             string                `json:"date"`
	SchedulePattern  *practitioner.Pattern `json:"schedule_pattern,omitempty"`
	AppointmentCount int                   `json:"appointment_count"`
}

// AppointmentRef is the read-only appointment view the availability computer
// consumes: just enough to mark a (doctor, date, time) cell occupied.
type AppointmentRef struct {
	DoctorID uuid.UUID
	Date     string
	Time     string
}

// ParseDate validates a YYYY-MM-DD date key.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

// DatesInRange expands an inclusive date range into its date keys in
// ascending order. A start after end yields an empty range.
func DatesInRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}
