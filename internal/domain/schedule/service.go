package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/practitioner"
)

// DoctorRoster is the read-only doctor view duty resolution consumes.
type DoctorRoster interface {
	ListActive(ctx context.Context) ([]*practitioner.Doctor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*practitioner.Doctor, error)
}

// AppointmentSource supplies appointment existence for a date range, used
// purely to mark availability cells occupied.
type AppointmentSource interface {
	ListRefs(ctx context.Context, start, end string) ([]AppointmentRef, error)
}

// Grid describes how a duty day expands into bookable times: on-the-hour
// values from FirstHour through LastHour, minus the excluded hours (the
// lunch break by default).
type Grid struct {
	FirstHour     int
	LastHour      int
	ExcludedHours map[int]bool
}

// Times returns the grid's time-of-day values ascending, formatted HH:MM.
func (g Grid) Times() []string {
	var times []string
	for h := g.FirstHour; h <= g.LastHour; h++ {
		if g.ExcludedHours[h] {
			continue
		}
		times = append(times, fmt.Sprintf("%02d:00", h))
	}
	return times
}

type Service struct {
	overrides    OverrideRepository
	roster       DoctorRoster
	appointments AppointmentSource
	grid         Grid
}

func NewService(overrides OverrideRepository, roster DoctorRoster, appointments AppointmentSource, grid Grid) *Service {
	return &Service{
		overrides:    overrides,
		roster:       roster,
		appointments: appointments,
		grid:         grid,
	}
}

// -- Override management --

// CreateOverride records a manual reassignment for one date. The doctor the
// pattern would have assigned is captured as the override's original doctor
// so the correction is auditable; a date whose pattern assigned nobody keeps
// a null original.
func (s *Service) CreateOverride(ctx context.Context, o *Override) (*Override, error) {
	if err := s.validateOverride(ctx, o); err != nil {
		return nil, err
	}

	defaultDoctors, err := s.patternDoctorsFor(ctx, o.Date)
	if err != nil {
		return nil, err
	}
	if len(defaultDoctors) > 0 {
		id := defaultDoctors[0].ID
		o.OriginalDoctorID = &id
	} else {
		o.OriginalDoctorID = nil
	}

	if err := s.overrides.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateOverride corrects an existing override in place, keyed by its date.
func (s *Service) UpdateOverride(ctx context.Context, o *Override) (*Override, error) {
	if err := s.validateOverride(ctx, o); err != nil {
		return nil, err
	}
	existing, err := s.overrides.GetByDate(ctx, o.Date)
	if err != nil {
		return nil, err
	}
	o.OriginalDoctorID = existing.OriginalDoctorID
	if err := s.overrides.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) DeleteOverride(ctx context.Context, date string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	return s.overrides.DeleteByDate(ctx, date)
}

func (s *Service) GetOverride(ctx context.Context, date string) (*Override, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	return s.overrides.GetByDate(ctx, date)
}

func (s *Service) ListOverrides(ctx context.Context, start, end string) ([]*Override, error) {
	if _, err := ParseDate(start); err != nil {
		return nil, err
	}
	if _, err := ParseDate(end); err != nil {
		return nil, err
	}
	return s.overrides.GetByDateRange(ctx, start, end)
}

func (s *Service) ListOverridesByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Override, error) {
	return s.overrides.GetByDoctor(ctx, doctorID)
}

func (s *Service) validateOverride(ctx context.Context, o *Override) error {
	if _, err := ParseDate(o.Date); err != nil {
		return err
	}
	if o.AssignedDoctorID == uuid.Nil {
		return fmt.Errorf("assigned_doctor_id is required")
	}
	if o.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	if _, err := s.roster.GetByID(ctx, o.AssignedDoctorID); err != nil {
		if errors.Is(err, practitioner.ErrNotFound) {
			return fmt.Errorf("assigned doctor does not exist")
		}
		return fmt.Errorf("load assigned doctor: %w", err)
	}
	return nil
}

// -- Duty resolution --

// ResolveOnDutyDoctors returns every doctor on duty for the date. An
// override wins outright, regardless of the assignee's own pattern or active
// flag. Otherwise each active doctor whose pattern covers the weekday is on
// duty, in roster (registration) order; nothing collapses multiple matches
// down to one. A date with neither yields an empty slice.
func (s *Service) ResolveOnDutyDoctors(ctx context.Context, date string) ([]*practitioner.Doctor, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	o, err := s.overrides.GetByDate(ctx, date)
	if err != nil && !errors.Is(err, ErrOverrideNotFound) {
		return nil, fmt.Errorf("look up override: %w", err)
	}
	if o != nil {
		return s.overriddenDoctors(ctx, o)
	}

	return s.patternDoctorsFor(ctx, date)
}

// ResolveOnDutyDoctor is the single-doctor convenience form: the first
// on-duty doctor in roster order, with ok=false when nobody is on duty.
func (s *Service) ResolveOnDutyDoctor(ctx context.Context, date string) (*practitioner.Doctor, bool, error) {
	doctors, err := s.ResolveOnDutyDoctors(ctx, date)
	if err != nil {
		return nil, false, err
	}
	if len(doctors) == 0 {
		return nil, false, nil
	}
	return doctors[0], true, nil
}

func (s *Service) overriddenDoctors(ctx context.Context, o *Override) ([]*practitioner.Doctor, error) {
	d, err := s.roster.GetByID(ctx, o.AssignedDoctorID)
	if err != nil {
		if errors.Is(err, practitioner.ErrNotFound) {
			// The assignee was deleted after the override was written;
			// nobody is on duty rather than a phantom doctor.
			return nil, nil
		}
		return nil, fmt.Errorf("load overridden doctor: %w", err)
	}
	return []*practitioner.Doctor{d}, nil
}

func (s *Service) patternDoctorsFor(ctx context.Context, date string) ([]*practitioner.Doctor, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	active, err := s.roster.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active doctors: %w", err)
	}
	var onDuty []*practitioner.Doctor
	for _, d := range active {
		if d.OnDutyDefault(day) {
			onDuty = append(onDuty, d)
		}
	}
	return onDuty, nil
}

// -- Availability --

// AvailabilitySlots computes the availability grid for an inclusive date
// range: date-major, then doctor in roster order, then time ascending. A
// slot is unavailable iff an appointment exists for the same doctor, date
// and time. The grid is recomputed on every call; appointment state changes
// outside this package.
func (s *Service) AvailabilitySlots(ctx context.Context, start, end string) ([]AvailabilitySlot, error) {
	dates, err := DatesInRange(start, end)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return []AvailabilitySlot{}, nil
	}

	onDuty, err := s.resolveRange(ctx, dates)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookedIndex(ctx, start, end)
	if err != nil {
		return nil, err
	}

	slots := []AvailabilitySlot{}
	times := s.grid.Times()
	for _, date := range dates {
		for _, d := range onDuty[date] {
			for _, t := range times {
				slots = append(slots, AvailabilitySlot{
					DoctorID:        d.ID,
					DoctorName:      d.FullName,
					Date:            date,
					Time:            t,
					IsAvailable:     !booked[refKey(d.ID, date, t)],
					SchedulePattern: d.Pattern,
				})
			}
		}
	}
	return slots, nil
}

// ScheduleBlocks is the day-level view: one block per on-duty (doctor, date)
// with the number of appointments already booked for that doctor and date.
func (s *Service) ScheduleBlocks(ctx context.Context, start, end string) ([]ScheduleBlock, error) {
	dates, err := DatesInRange(start, end)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return []ScheduleBlock{}, nil
	}

	onDuty, err := s.resolveRange(ctx, dates)
	if err != nil {
		return nil, err
	}

	refs, err := s.appointments.ListRefs(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	counts := make(map[string]int)
	for _, ref := range refs {
		if _, err := ParseDate(ref.Date); err != nil {
			continue
		}
		counts[ref.DoctorID.String()+"|"+ref.Date]++
	}

	blocks := []ScheduleBlock{}
	for _, date := range dates {
		for _, d := range onDuty[date] {
			blocks = append(blocks, ScheduleBlock{
				DoctorID:         d.ID,
				DoctorName:       d.FullName,
				Date:             date,
				SchedulePattern:  d.Pattern,
				AppointmentCount: counts[d.ID.String()+"|"+date],
			})
		}
	}
	return blocks, nil
}

// resolveRange resolves on-duty doctors for every date in one pass, bulk
// fetching overrides so a month-long grid does not issue a query per day.
func (s *Service) resolveRange(ctx context.Context, dates []string) (map[string][]*practitioner.Doctor, error) {
	overrides, err := s.overrides.GetByDates(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("bulk look up overrides: %w", err)
	}
	overrideByDate := make(map[string]*Override, len(overrides))
	for _, o := range overrides {
		overrideByDate[o.Date] = o
	}

	active, err := s.roster.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active doctors: %w", err)
	}

	result := make(map[string][]*practitioner.Doctor, len(dates))
	for _, date := range dates {
		if o, ok := overrideByDate[date]; ok {
			doctors, err := s.overriddenDoctors(ctx, o)
			if err != nil {
				return nil, err
			}
			result[date] = doctors
			continue
		}

		day, err := ParseDate(date)
		if err != nil {
			return nil, err
		}
		for _, d := range active {
			if d.OnDutyDefault(day) {
				result[date] = append(result[date], d)
			}
		}
	}
	return result, nil
}

// bookedIndex loads appointment refs for the range and indexes them by
// (doctor, date, time). Refs with malformed dates are skipped: they can
// never match a generated cell, so they are ignored rather than failing the
// whole grid.
func (s *Service) bookedIndex(ctx context.Context, start, end string) (map[string]bool, error) {
	refs, err := s.appointments.ListRefs(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	booked := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if _, err := ParseDate(ref.Date); err != nil {
			continue
		}
		booked[refKey(ref.DoctorID, ref.Date, ref.Time)] = true
	}
	return booked, nil
}

func refKey(doctorID uuid.UUID, date, t string) string {
	return doctorID.String() + "|" + date + "|" + t
}
