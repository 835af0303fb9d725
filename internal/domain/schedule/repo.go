package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrDuplicateOverride = errors.New("an override already exists for this date")
	ErrOverrideNotFound  = errors.New("override not found")
)

// OverrideRepository is the only component allowed to mutate override
// records; everything else reads through it. Create must be an atomic
// unique-key insert per date: of two concurrent creates for the same date,
// exactly one wins and the other fails with ErrDuplicateOverride.
type OverrideRepository interface {
	Create(ctx context.Context, o *Override) error
	Update(ctx context.Context, o *Override) error
	DeleteByDate(ctx context.Context, date string) error

	GetByDate(ctx context.Context, date string) (*Override, error)
	ExistsByDate(ctx context.Context, date string) (bool, error)

	// GetByDateRange returns overrides in [start, end] ascending by date.
	GetByDateRange(ctx context.Context, start, end string) ([]*Override, error)

	// GetByDates is the bulk form used by range queries to avoid per-date
	// round trips.
	GetByDates(ctx context.Context, dates []string) ([]*Override, error)

	// GetByDoctor returns every override assigning the doctor, ascending by date.
	GetByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Override, error)
}
