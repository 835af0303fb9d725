package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinicore/internal/domain/patient"
	"github.com/clinicore/clinicore/internal/domain/practitioner"
	"github.com/clinicore/clinicore/internal/domain/schedule"
)

// DoctorDirectory and PatientDirectory are the lookups booking needs to
// verify referenced records exist.
type DoctorDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*practitioner.Doctor, error)
}

type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	doctors  DoctorDirectory
	patients PatientDirectory
	slots    schedule.SlotNumberer
	gate     *schedule.HoursGate
}

func NewService(repo Repository, doctors DoctorDirectory, patients PatientDirectory, slots schedule.SlotNumberer, gate *schedule.HoursGate) *Service {
	return &Service{repo: repo, doctors: doctors, patients: patients, slots: slots, gate: gate}
}

// Create books a slot. Bookings are only accepted while the clinic is open.
// The slot number is derived from the requested time and stamped on the row;
// a blocking appointment already holding the same (doctor, date, time) fails
// the booking with ErrSlotTaken.
func (s *Service) Create(ctx context.Context, a *Appointment) (*Appointment, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}

	slotNo, err := s.slots.Number(a.Time)
	if err != nil {
		return nil, err
	}
	a.SlotNumber = slotNo
	a.Status = StatusScheduled

	taken, err := s.repo.ExistsAt(ctx, a.DoctorID, a.Date, a.Time, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Reschedule moves an appointment to a new date and time, restamping the
// slot number. The old slot is released by virtue of the row moving. Like
// Create, it is only accepted while the clinic is open.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date, timeOfDay string) (*Appointment, error) {
	if err := s.gate.Check(); err != nil {
		return nil, err
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled || a.Status == StatusCompleted {
		return nil, fmt.Errorf("cannot reschedule a %s appointment", a.Status)
	}

	a.Date = date
	a.Time = timeOfDay
	if err := s.validate(ctx, a); err != nil {
		return nil, err
	}
	slotNo, err := s.slots.Number(timeOfDay)
	if err != nil {
		return nil, err
	}
	a.SlotNumber = slotNo

	// The appointment's own row must not block its own move.
	taken, err := s.repo.ExistsAt(ctx, a.DoctorID, date, timeOfDay, a.ID)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetStatus transitions an appointment's lifecycle state.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.SetStatus(ctx, id, StatusCancelled)
}

func (s *Service) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// ListRefs adapts blocking appointments in the range into the slim view the
// availability grid consumes.
func (s *Service) ListRefs(ctx context.Context, start, end string) ([]schedule.AppointmentRef, error) {
	items, err := s.repo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	refs := make([]schedule.AppointmentRef, 0, len(items))
	for _, a := range items {
		refs = append(refs, schedule.AppointmentRef{
			DoctorID: a.DoctorID,
			Date:     a.Date,
			Time:     a.Time,
		})
	}
	return refs, nil
}

func (s *Service) validate(ctx context.Context, a *Appointment) error {
	if _, err := schedule.ParseDate(a.Date); err != nil {
		return err
	}
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if _, err := s.patients.GetByID(ctx, a.PatientID); err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			return fmt.Errorf("patient does not exist")
		}
		return fmt.Errorf("load patient: %w", err)
	}
	if _, err := s.doctors.GetByID(ctx, a.DoctorID); err != nil {
		if errors.Is(err, practitioner.ErrNotFound) {
			return fmt.Errorf("doctor does not exist")
		}
		return fmt.Errorf("load doctor: %w", err)
	}
	return nil
}
