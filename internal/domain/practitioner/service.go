package practitioner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	doctors Repository
}

func NewService(doctors Repository) *Service {
	return &Service{doctors: doctors}
}

// Create registers a doctor. When no pattern is supplied one is assigned by
// round-robin over the doctor's rank among active doctors; a pattern in the
// request always wins over that policy.
func (s *Service) Create(ctx context.Context, d *Doctor, rawPattern string) (*Doctor, error) {
	if d.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	d.Active = true

	if rawPattern != "" {
		p, err := ParsePattern(rawPattern)
		if err != nil {
			return nil, err
		}
		d.Pattern = &p
	} else {
		rank, err := s.doctors.CountActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("count active doctors: %w", err)
		}
		p := DefaultPatternForRank(rank)
		d.Pattern = &p
	}

	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// Update replaces the doctor's editable fields. An empty rawPattern clears
// the pattern entirely, taking the doctor off the default rotation.
func (s *Service) Update(ctx context.Context, d *Doctor, rawPattern string) (*Doctor, error) {
	if d.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if rawPattern != "" {
		p, err := ParsePattern(rawPattern)
		if err != nil {
			return nil, err
		}
		d.Pattern = &p
	} else {
		d.Pattern = nil
	}
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) ListActive(ctx context.Context) ([]*Doctor, error) {
	return s.doctors.ListActive(ctx)
}

// SetActive flips the duty eligibility flag without touching other fields.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Active = active
	if err := s.doctors.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
