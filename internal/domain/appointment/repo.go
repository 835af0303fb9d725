package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("appointment not found")
	ErrSlotTaken = errors.New("the slot is already booked for this doctor")
)

// ListFilter narrows List results. Zero values mean no filtering on that
// dimension.
type ListFilter struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      string
}

// Repository persists appointments. Create must enforce (doctor, date, time)
// uniqueness among blocking appointments and fail with ErrSlotTaken when two
// bookings race for the same slot.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error)

	// ListBetween returns blocking appointments whose date falls in the
	// inclusive range, for availability computation.
	ListBetween(ctx context.Context, start, end string) ([]*Appointment, error)

	// ExistsAt reports whether a blocking appointment other than excludeID
	// holds (doctor, date, time). Pass uuid.Nil to consider every row.
	ExistsAt(ctx context.Context, doctorID uuid.UUID, date, timeOfDay string, excludeID uuid.UUID) (bool, error)
}
