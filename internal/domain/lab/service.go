package lab

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/schedule"
)

type Service struct {
	repo Repository
	gate *schedule.HoursGate
}

func NewService(repo Repository, gate *schedule.HoursGate) *Service {
	return &Service{repo: repo, gate: gate}
}

// Create registers a lab request. New requests are only accepted while the
// clinic is open; the gate fails with schedule.ErrClinicClosed otherwise.
func (s *Service) Create(ctx context.Context, r *Request) (*Request, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}
	if r.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if r.TestName == "" {
		return nil, fmt.Errorf("test_name is required")
	}
	r.Status = StatusRequested
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create lab request: %w", err)
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus advances a request's state, optionally attaching the result.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status, result *string) (*Request, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Status = status
	if result != nil {
		r.Result = result
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Request, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Request, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
