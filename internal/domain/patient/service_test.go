package patient

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	byID map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
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

func (m *mockRepo) all() []*Patient {
	var items []*Patient
	for _, p := range m.byID {
		cp := *p
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].LastName != items[j].LastName {
			return items[i].LastName < items[j].LastName
		}
		return items[i].FirstName < items[j].FirstName
	})
	return items
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	items := m.all()
	total := len(items)
	if offset >= len(items) {
		return nil, total, nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items, total, nil
}

func (m *mockRepo) Search(_ context.Context, name string, limit, offset int) ([]*Patient, int, error) {
	var matched []*Patient
	needle := strings.ToLower(name)
	for _, p := range m.all() {
		if strings.Contains(strings.ToLower(p.FirstName), needle) ||
			strings.Contains(strings.ToLower(p.LastName), needle) {
			matched = append(matched, p)
		}
	}
	return matched, len(matched), nil
}

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.Create(context.Background(), &Patient{
		FirstName:   "Maria",
		LastName:    "Santos",
		DateOfBirth: strPtr("1990-04-12"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected an assigned id")
	}
	if p.FullName() != "Maria Santos" {
		t.Errorf("full name = %q", p.FullName())
	}
}

func TestCreate_Invalid(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, &Patient{}); err == nil {
		t.Error("nameless patient: expected error")
	}
	if _, err := svc.Create(ctx, &Patient{FirstName: "Maria", DateOfBirth: strPtr("12/04/1990")}); err == nil {
		t.Error("malformed date of birth: expected error")
	}
	if _, err := svc.Create(ctx, &Patient{FirstName: "Maria", DateOfBirth: strPtr("2990-04-12")}); err == nil {
		t.Error("future date of birth: expected error")
	}
}

func TestUpdate_Missing(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Update(context.Background(), &Patient{ID: uuid.New(), FirstName: "Maria"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSearch(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()
	for _, name := range [][2]string{{"Maria", "Santos"}, {"Jose", "Santiago"}, {"Ana", "Reyes"}} {
		if _, err := svc.Create(ctx, &Patient{FirstName: name[0], LastName: name[1]}); err != nil {
			t.Fatalf("seed %v: %v", name, err)
		}
	}

	items, total, err := svc.Search(ctx, "sant", 50, 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("got %d matches, want 2", total)
	}
}
