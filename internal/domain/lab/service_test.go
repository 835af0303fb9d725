package lab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/schedule"
)

type mockRepo struct {
	byID map[uuid.UUID]*Request
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Request)}
}

func (m *mockRepo) Create(_ context.Context, r *Request) error {
	r.ID = uuid.New()
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Request, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, r *Request) error {
	if _, ok := m.byID[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Request, int, error) {
	var items []*Request
	for _, r := range m.byID {
		cp := *r
		items = append(items, &cp)
	}
	return items, len(items), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Request, error) {
	var items []*Request
	for _, r := range m.byID {
		if r.PatientID == patientID {
			cp := *r
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
	svc := NewService(newMockRepo(), gateAt(10))
	r, err := svc.Create(context.Background(), &Request{
		PatientID: uuid.New(),
		TestName:  "CBC",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != StatusRequested {
		t.Errorf("status = %s, want requested", r.Status)
	}
}

func TestCreate_AfterHours(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(19))
	_, err := svc.Create(context.Background(), &Request{
		PatientID: uuid.New(),
		TestName:  "CBC",
	})
	if !errors.Is(err, schedule.ErrClinicClosed) {
		t.Fatalf("got %v, want ErrClinicClosed", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(10))
	ctx := context.Background()

	if _, err := svc.Create(ctx, &Request{TestName: "CBC"}); err == nil {
		t.Error("missing patient: expected error")
	}
	if _, err := svc.Create(ctx, &Request{PatientID: uuid.New()}); err == nil {
		t.Error("missing test name: expected error")
	}
}

func TestSetStatus_AttachesResult(t *testing.T) {
	svc := NewService(newMockRepo(), gateAt(10))
	ctx := context.Background()

	r, err := svc.Create(ctx, &Request{PatientID: uuid.New(), TestName: "CBC"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result := "WBC 7.2"
	updated, err := svc.SetStatus(ctx, r.ID, StatusCompleted, &result)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != StatusCompleted || updated.Result == nil || *updated.Result != result {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.SetStatus(ctx, r.ID, Status("bogus"), nil); err == nil {
		t.Error("invalid status: expected error")
	}
}
