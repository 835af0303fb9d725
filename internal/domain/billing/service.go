package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicore/clinicore/internal/platform/db"
)

type Service struct {
	repo Repository
	pool *pgxpool.Pool
}

// NewService builds the billing service. The pool is used to make multi-row
// invoice writes transactional; a nil pool (in-memory repositories) skips
// the transaction wrapper.
func NewService(repo Repository, pool *pgxpool.Pool) *Service {
	return &Service{repo: repo, pool: pool}
}

func (s *Service) Create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	if inv.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if len(inv.Items) == 0 {
		return nil, fmt.Errorf("invoice needs at least one line item")
	}
	for _, item := range inv.Items {
		if item.Description == "" {
			return nil, fmt.Errorf("line item description is required")
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("line item quantity must be positive")
		}
		if item.UnitPriceCents < 0 {
			return nil, fmt.Errorf("line item unit price cannot be negative")
		}
	}

	inv.Status = StatusDraft
	inv.Recalculate()

	if err := s.inTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, inv)
	}); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// Issue finalizes a draft invoice.
func (s *Service) Issue(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusDraft {
		return nil, fmt.Errorf("only draft invoices can be issued, this one is %s", inv.Status)
	}
	now := time.Now()
	inv.Status = StatusIssued
	inv.IssuedAt = &now
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// MarkPaid settles an issued invoice.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status != StatusIssued {
		return nil, fmt.Errorf("only issued invoices can be paid, this one is %s", inv.Status)
	}
	now := time.Now()
	inv.Status = StatusPaid
	inv.PaidAt = &now
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Void cancels an invoice that has not been paid.
func (s *Service) Void(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == StatusPaid {
		return nil, fmt.Errorf("paid invoices cannot be voided")
	}
	inv.Status = StatusVoid
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Invoice, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Invoice, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) SummaryByPatient(ctx context.Context, patientID uuid.UUID) (*PatientSummary, error) {
	return s.repo.SummaryByPatient(ctx, patientID)
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}
