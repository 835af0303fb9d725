package practitioner

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("doctor not found")

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)

	// ListActive returns active doctors in registration order. That order is
	// the roster order used everywhere duty is resolved, so it must be stable.
	ListActive(ctx context.Context) ([]*Doctor, error)

	CountActive(ctx context.Context) (int, error)
}
