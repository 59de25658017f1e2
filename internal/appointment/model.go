package appointment

import (
	"fmt"
	"slices"
	"time"

	"fitclub/internal/common"
)

type Type string

const (
	TypePersonalTraining Type = "personal_training"
	TypeGroupClass       Type = "group_class"
	TypeConsultation     Type = "consultation"
	TypeAssessment       Type = "assessment"
)

func ParseType(s string) (Type, error) {
	return common.ParseTag("appointment type", s, TypePersonalTraining, TypeGroupClass, TypeConsultation, TypeAssessment)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	v, err := common.UnmarshalTag(data, ParseType)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func ParseStatus(s string) (Status, error) {
	return common.ParseTag("appointment status", s, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := common.UnmarshalTag(data, ParseStatus)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Status only moves forward. Completed, cancelled and no-show are terminal.
var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type Appointment struct {
	common.Base
	MemberID   string    `json:"member_id"`
	TrainerID  string    `json:"trainer_id"`
	LocationID string    `json:"location_id"`
	Type       Type      `json:"appointment_type"`
	StartTime  time.Time `json:"start_time"`
	Duration   int       `json:"duration"`
	Status     Status    `json:"status"`
	ZoneID     *string   `json:"zone_id"`
	Notes      *string   `json:"notes"`
}

func (a Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.Duration) * time.Minute)
}

func (a Appointment) IsUpcoming(now time.Time) bool {
	return a.StartTime.After(now)
}

func (a *Appointment) Start(now time.Time) error {
	return a.transition(StatusInProgress, now)
}

// Cancel records note as "Cancelled: <note>" when one is given.
func (a *Appointment) Cancel(note string, now time.Time) error {
	if err := a.transition(StatusCancelled, now); err != nil {
		return err
	}
	if note != "" {
		a.Notes = common.StringPtr("Cancelled: " + note)
	}
	return nil
}

// Complete replaces the notes with note when one is given.
func (a *Appointment) Complete(note string, now time.Time) error {
	if err := a.transition(StatusCompleted, now); err != nil {
		return err
	}
	if note != "" {
		a.Notes = common.StringPtr(note)
	}
	return nil
}

func (a *Appointment) MarkNoShow(now time.Time) error {
	return a.transition(StatusNoShow, now)
}

// Reschedule moves a scheduled appointment. A nil duration keeps the
// current one.
func (a *Appointment) Reschedule(start time.Time, duration *int, now time.Time) error {
	if a.Status != StatusScheduled {
		return fmt.Errorf("%w: cannot reschedule a %s appointment", ErrInvalidTransition, a.Status)
	}
	a.StartTime = start
	if duration != nil {
		a.Duration = *duration
	}
	a.Touch(now)
	return nil
}

func (a *Appointment) transition(next Status, now time.Time) error {
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
	}
	a.Status = next
	a.Touch(now)
	return nil
}

type CreateAppointmentRequest struct {
	MemberID   string    `json:"member_id" validate:"required"`
	TrainerID  string    `json:"trainer_id" validate:"required"`
	LocationID string    `json:"location_id" validate:"required"`
	Type       Type      `json:"appointment_type" validate:"required,oneof=personal_training group_class consultation assessment"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	Duration   int       `json:"duration" validate:"gt=0"`
	ZoneID     *string   `json:"zone_id"`
	Notes      *string   `json:"notes"`
}
