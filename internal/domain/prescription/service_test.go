package prescription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/schedule"
)

type mockRepo struct {
	byID map[uuid.UUID]*Prescription
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Prescription)}
}

func (m *mockRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Prescription) error {
	if _, ok := m.byID[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Prescription, int, error) {
	var items []*Prescription
	for _, p := range m.byID {
		cp := *p
		items = append(items, &cp)
	}
	return items, len(items), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	var items []*Prescription
	for _, p := range m.byID {
		if p.PatientID == patientID {
			cp := *p
			items = append(items, &cp)
		}
	}
	return items, nil
}

func gateAt(hour int) *schedule.HoursGate {
	return schedule.NewHoursGate(schedule.Hours{Open: 8, Close: 18}, func() time.Time {
		return time.Date(2025, 6, 2, hour, 0, 0, 0, time.UTC)
	})
}

func TestCreate_DuringHours(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(9))
	p, err := svc.Create(context.Background(), &Prescription{
		PatientID:  uuid.New(),
		Medication: "Amoxicillin",
		Dosage:     "500mg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}
}

func TestCreate_AfterHours(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(18))
	_, err := svc.Create(context.Background(), &Prescription{
		PatientID:  uuid.New(),
		Medication: "Amoxicillin",
		Dosage:     "500mg",
	})
	if !errors.Is(err, schedule.ErrClinicClosed) {
		t.Fatalf("got %v, want ErrClinicClosed", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(9))
	ctx := context.Background()

	tests := []struct {
		name string
		p    Prescription
	}{
		{"missing patient", Prescription{Medication: "Amoxicillin", Dosage: "500mg"}},
		{"missing medication", Prescription{PatientID: uuid.New(), Dosage: "500mg"}},
		{"missing dosage", Prescription{PatientID: uuid.New(), Medication: "Amoxicillin"}},
	}
	for _, tt := range tests {
		p := tt.p
		if _, err := svc.Create(ctx, &p); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestListByPatient(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(9))
	ctx := context.Background()
	target := uuid.New()

	for _, pid := range []uuid.UUID{target, target, uuid.New()} {
		if _, err := svc.Create(ctx, &Prescription{PatientID: pid, Medication: "Ibuprofen", Dosage: "200mg"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, err := svc.ListByPatient(ctx, target)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d prescriptions, want 2", len(items))
	}
}
