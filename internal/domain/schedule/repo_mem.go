package schedule

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// overrideRepoMem is the in-memory override backend, used in tests and in
// single-process deployments without a database. The mutex makes the
// check-then-insert in Create atomic, matching the unique-index guarantee of
// the Postgres backend.
type overrideRepoMem struct {
	mu     sync.RWMutex
	byDate map[string]*Override
}

func NewOverrideRepoMem() OverrideRepository {
	return &overrideRepoMem{byDate: make(map[string]*Override)}
}

func (r *overrideRepoMem) Create(_ context.Context, o *Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byDate[o.Date]; exists {
		return ErrDuplicateOverride
	}

	o.ID = uuid.New()
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	stored := *o
	r.byDate[o.Date] = &stored
	return nil
}

func (r *overrideRepoMem) Update(_ context.Context, o *Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byDate[o.Date]
	if !ok {
		return ErrOverrideNotFound
	}

	o.ID = existing.ID
	o.CreatedAt = existing.CreatedAt
	o.UpdatedAt = time.Now()

	stored := *o
	r.byDate[o.Date] = &stored
	return nil
}

func (r *overrideRepoMem) DeleteByDate(_ context.Context, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byDate[date]; !ok {
		return ErrOverrideNotFound
	}
	delete(r.byDate, date)
	return nil
}

func (r *overrideRepoMem) GetByDate(_ context.Context, date string) (*Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byDate[date]
	if !ok {
		return nil, ErrOverrideNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *overrideRepoMem) ExistsByDate(_ context.Context, date string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byDate[date]
	return ok, nil
}

func (r *overrideRepoMem) GetByDateRange(_ context.Context, start, end string) ([]*Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*Override
	for date, o := range r.byDate {
		if date >= start && date <= end {
			copied := *o
			items = append(items, &copied)
		}
	}
	sortByDate(items)
	return items, nil
}

func (r *overrideRepoMem) GetByDates(_ context.Context, dates []string) ([]*Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*Override
	for _, date := range dates {
		if o, ok := r.byDate[date]; ok {
			copied := *o
			items = append(items, &copied)
		}
	}
	sortByDate(items)
	return items, nil
}

func (r *overrideRepoMem) GetByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*Override
	for _, o := range r.byDate {
		if o.AssignedDoctorID == doctorID {
			copied := *o
			items = append(items, &copied)
		}
	}
	sortByDate(items)
	return items, nil
}

func sortByDate(items []*Override) {
	sort.Slice(items, func(i, j int) bool { return items[i].Date < items[j].Date })
}
