package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the appointment lifecycle state.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment maps to the appointment table. Date and Time are the booking
// keys (YYYY-MM-DD and HH:MM); SlotNumber is stamped from Time at creation
// and never recomputed afterwards, so historical rows keep the number they
// were booked under.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID   uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Date       string    `db:"date" json:"date"`
	Time       string    `db:"time" json:"time"`
	SlotNumber int       `db:"slot_number" json:"slot_number"`
	Status     Status    `db:"status" json:"status"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Blocking reports whether the appointment occupies its slot. Cancelled
// appointments release the slot for rebooking.
func (a *Appointment) Blocking() bool {
	return a.Status != StatusCancelled
}
