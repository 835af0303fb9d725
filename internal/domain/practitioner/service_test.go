package practitioner

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	doctors map[uuid.UUID]*Doctor
	seq     int
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	m.seq++
	d.CreatedAt = time.Unix(int64(m.seq), 0)
	d.UpdatedAt = d.CreatedAt
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return ErrNotFound
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.doctors[id]; !ok {
		return ErrNotFound
	}
	delete(m.doctors, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	all := m.sorted()
	return all, len(all), nil
}

func (m *mockRepo) ListActive(_ context.Context) ([]*Doctor, error) {
	var result []*Doctor
	for _, d := range m.sorted() {
		if d.Active {
			result = append(result, d)
		}
	}
	return result, nil
}

func (m *mockRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, d := range m.doctors {
		if d.Active {
			n++
		}
	}
	return n, nil
}

func (m *mockRepo) sorted() []*Doctor {
	var all []*Doctor
	for _, d := range m.doctors {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all
}

func newTestService() *Service {
	return NewService(newMockRepo())
}

func TestService_Create_AutoAssignsPattern(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, &Doctor{FullName: "Dr. Reyes"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Pattern == nil || *first.Pattern != PatternMWF {
		t.Errorf("expected first doctor to get MWF, got %v", first.Pattern)
	}

	second, err := svc.Create(ctx, &Doctor{FullName: "Dr. Cruz"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Pattern == nil || *second.Pattern != PatternTTH {
		t.Errorf("expected second doctor to get TTH, got %v", second.Pattern)
	}

	third, err := svc.Create(ctx, &Doctor{FullName: "Dr. Lim"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.Pattern == nil || *third.Pattern != PatternMWF {
		t.Errorf("expected third doctor to wrap back to MWF, got %v", third.Pattern)
	}
}

func TestService_Create_ExplicitPatternWins(t *testing.T) {
	svc := newTestService()
	d, err := svc.Create(context.Background(), &Doctor{FullName: "Dr. Reyes"}, "tth")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Pattern == nil || *d.Pattern != PatternTTH {
		t.Errorf("expected explicit TTH, got %v", d.Pattern)
	}
}

func TestService_Create_RejectsInvalidPattern(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), &Doctor{FullName: "Dr. Reyes"}, "MTWTF")
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestService_Create_RequiresName(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), &Doctor{}, "")
	if err == nil {
		t.Fatal("expected error for missing full_name")
	}
}

func TestService_SetActive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, &Doctor{FullName: "Dr. Reyes"}, "mwf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deactivated, err := svc.SetActive(ctx, d.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deactivated.Active {
		t.Error("expected doctor to be inactive")
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active doctors, got %d", len(active))
	}
}

func TestService_Update_ClearsPattern(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, &Doctor{FullName: "Dr. Reyes"}, "mwf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Update(ctx, d, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Pattern != nil {
		t.Errorf("expected pattern cleared, got %v", *updated.Pattern)
	}
	if updated.OnDutyDefault(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("doctor without pattern must not be on duty")
	}
}
