package appointment

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"fitclub/internal/common"
	"fitclub/internal/logger"
	"fitclub/internal/metrics"
	"fitclub/internal/validation"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("invalid appointment status transition")
)

type Service interface {
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error)
	GetAppointment(ctx context.Context, id string) (*Appointment, error)
	ListUpcoming(ctx context.Context, memberID string) ([]Appointment, error)
	ListByDate(ctx context.Context, day time.Time, locationID string) ([]Appointment, error)
	MemberHistory(ctx context.Context, memberID string) ([]Appointment, error)
	TrainerSchedule(ctx context.Context, trainerID string, day time.Time) ([]Appointment, error)

	StartAppointment(ctx context.Context, id string) (*Appointment, error)
	CancelAppointment(ctx context.Context, id, note string) (*Appointment, error)
	CompleteAppointment(ctx context.Context, id, note string) (*Appointment, error)
	MarkNoShow(ctx context.Context, id string) (*Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, newStart time.Time, newDuration *int) (*Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  common.Now,
	}
}

func (s *service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	a := Appointment{
		Base:       common.NewBase(s.now()),
		MemberID:   req.MemberID,
		TrainerID:  req.TrainerID,
		LocationID: req.LocationID,
		Type:       req.Type,
		StartTime:  req.StartTime.UTC(),
		Duration:   req.Duration,
		Status:     StatusScheduled,
		ZoneID:     req.ZoneID,
		Notes:      req.Notes,
	}

	created, err := s.repo.Add(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	logger.Info("appointment created",
		"appointment_id", created.ID,
		"member_id", created.MemberID,
		"start_time", created.StartTime)
	return &created, nil
}

func (s *service) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	a, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

// ListUpcoming returns the member's scheduled appointments that start after
// now, soonest first.
func (s *service) ListUpcoming(ctx context.Context, memberID string) ([]Appointment, error) {
	now := s.now()
	return s.filter(ctx, func(a Appointment) bool {
		return a.MemberID == memberID && a.Status == StatusScheduled && a.IsUpcoming(now)
	}), nil
}

// ListByDate returns appointments starting within 24 hours of day. An
// empty locationID matches every location.
func (s *service) ListByDate(ctx context.Context, day time.Time, locationID string) ([]Appointment, error) {
	from, to := day, day.Add(24*time.Hour)
	return s.filter(ctx, func(a Appointment) bool {
		return (locationID == "" || a.LocationID == locationID) && within(a.StartTime, from, to)
	}), nil
}

func (s *service) MemberHistory(ctx context.Context, memberID string) ([]Appointment, error) {
	return s.filter(ctx, func(a Appointment) bool {
		return a.MemberID == memberID
	}), nil
}

// TrainerSchedule returns the trainer's appointments on day, leaving out
// cancelled ones.
func (s *service) TrainerSchedule(ctx context.Context, trainerID string, day time.Time) ([]Appointment, error) {
	from, to := day, day.Add(24*time.Hour)
	return s.filter(ctx, func(a Appointment) bool {
		return a.TrainerID == trainerID && a.Status != StatusCancelled && within(a.StartTime, from, to)
	}), nil
}

func (s *service) StartAppointment(ctx context.Context, id string) (*Appointment, error) {
	return s.transition(ctx, id, "start", func(a *Appointment, now time.Time) error {
		return a.Start(now)
	})
}

func (s *service) CancelAppointment(ctx context.Context, id, note string) (*Appointment, error) {
	return s.transition(ctx, id, "cancel", func(a *Appointment, now time.Time) error {
		return a.Cancel(note, now)
	})
}

func (s *service) CompleteAppointment(ctx context.Context, id, note string) (*Appointment, error) {
	return s.transition(ctx, id, "complete", func(a *Appointment, now time.Time) error {
		return a.Complete(note, now)
	})
}

func (s *service) MarkNoShow(ctx context.Context, id string) (*Appointment, error) {
	return s.transition(ctx, id, "no_show", func(a *Appointment, now time.Time) error {
		return a.MarkNoShow(now)
	})
}

func (s *service) RescheduleAppointment(ctx context.Context, id string, newStart time.Time, newDuration *int) (*Appointment, error) {
	if newStart.IsZero() {
		return nil, &validation.Error{Fields: []validation.FieldError{
			{Field: "StartTime", Tag: "required", Message: "StartTime is required"},
		}}
	}
	if newDuration != nil {
		if err := validation.Var("Duration", *newDuration, "gt=0"); err != nil {
			return nil, err
		}
	}

	return s.transition(ctx, id, "reschedule", func(a *Appointment, now time.Time) error {
		return a.Reschedule(newStart.UTC(), newDuration, now)
	})
}

func (s *service) DeleteAppointment(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if !found {
		return ErrAppointmentNotFound
	}

	logger.Info("appointment deleted", "appointment_id", id)
	return nil
}

// transition applies change and persists the result. A rejected change
// writes nothing.
func (s *service) transition(ctx context.Context, id, name string, change func(*Appointment, time.Time) error) (*Appointment, error) {
	a, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrAppointmentNotFound
	}

	if err := change(&a, s.now()); err != nil {
		metrics.RecordAppointmentTransition(name, err)
		logger.Debug("appointment transition rejected", "appointment_id", id, "transition", name, "error", err)
		return nil, err
	}

	found, err := s.repo.Update(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	if !found {
		return nil, ErrAppointmentNotFound
	}

	metrics.RecordAppointmentTransition(name, nil)
	logger.Info("appointment updated", "appointment_id", id, "transition", name, "status", a.Status)
	return &a, nil
}

func (s *service) filter(ctx context.Context, match func(Appointment) bool) []Appointment {
	var out []Appointment
	for _, a := range s.repo.All(ctx) {
		if match(a) {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(x, y Appointment) int {
		return x.StartTime.Compare(y.StartTime)
	})
	return out
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
