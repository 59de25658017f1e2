package attendance

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"fitclub/internal/common"
	"fitclub/internal/logger"
	"fitclub/internal/metrics"
	"fitclub/internal/validation"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("member already has an active attendance record")
	ErrAlreadyCheckedOut  = errors.New("attendance record already checked out")
)

type Service interface {
	CheckIn(ctx context.Context, memberID, locationID string, zoneID *string) (*Record, error)
	CheckOut(ctx context.Context, recordID string) (*Record, error)
	GetActiveAttendance(ctx context.Context, memberID string) (*Record, bool)
	GetRecord(ctx context.Context, id string) (*Record, error)
	ListForMember(ctx context.Context, memberID string, from, to *time.Time) ([]Record, error)
	ListAll(ctx context.Context, from, to *time.Time) ([]Record, error)
	ListByDate(ctx context.Context, day time.Time, locationID string) ([]Record, error)
}

type service struct {
	// mu makes the active-record lookup and the insert in CheckIn one step.
	mu   sync.Mutex
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		now:  common.Now,
	}
}

func (s *service) CheckIn(ctx context.Context, memberID, locationID string, zoneID *string) (*Record, error) {
	if err := validation.Struct(checkInRequest{MemberID: memberID, LocationID: locationID}); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if active, ok := s.GetActiveAttendance(ctx, memberID); ok {
		metrics.RecordCheckIn("conflict")
		return nil, fmt.Errorf("%w: record %s", ErrAlreadyCheckedIn, active.ID)
	}

	now := s.now()
	r := Record{
		Base:        common.NewBase(now),
		MemberID:    memberID,
		LocationID:  locationID,
		ZoneID:      zoneID,
		CheckInTime: now,
	}

	created, err := s.repo.Add(ctx, r)
	if err != nil {
		metrics.RecordCheckIn("error")
		return nil, fmt.Errorf("failed to check in: %w", err)
	}

	metrics.RecordCheckIn("ok")
	logger.Info("member checked in", "member_id", memberID, "location_id", locationID, "record_id", created.ID)
	return &created, nil
}

func (s *service) CheckOut(ctx context.Context, recordID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.repo.Get(ctx, recordID)
	if !ok {
		return nil, ErrAttendanceNotFound
	}

	if err := r.CheckOut(s.now()); err != nil {
		return nil, err
	}

	found, err := s.repo.Update(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to check out: %w", err)
	}
	if !found {
		return nil, ErrAttendanceNotFound
	}

	metrics.RecordCheckOut()
	minutes, _ := r.Duration()
	logger.Info("member checked out", "member_id", r.MemberID, "record_id", r.ID, "minutes", minutes)
	return &r, nil
}

// GetActiveAttendance returns the member's open record. CheckIn refuses to
// open a second one while this finds a record.
func (s *service) GetActiveAttendance(ctx context.Context, memberID string) (*Record, bool) {
	for _, r := range s.repo.All(ctx) {
		if r.MemberID == memberID && r.IsActive() {
			return &r, true
		}
	}
	return nil, false
}

func (s *service) GetRecord(ctx context.Context, id string) (*Record, error) {
	r, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrAttendanceNotFound
	}
	return &r, nil
}

// ListForMember returns the member's records with check-in time within
// [from, to]. Nil bounds are open.
func (s *service) ListForMember(ctx context.Context, memberID string, from, to *time.Time) ([]Record, error) {
	return s.filter(ctx, func(r Record) bool {
		return r.MemberID == memberID && inRange(r.CheckInTime, from, to)
	}), nil
}

func (s *service) ListAll(ctx context.Context, from, to *time.Time) ([]Record, error) {
	return s.filter(ctx, func(r Record) bool {
		return inRange(r.CheckInTime, from, to)
	}), nil
}

// ListByDate returns records checked in within 24 hours of day. An empty
// locationID matches every location.
func (s *service) ListByDate(ctx context.Context, day time.Time, locationID string) ([]Record, error) {
	end := day.Add(24 * time.Hour)
	return s.filter(ctx, func(r Record) bool {
		return (locationID == "" || r.LocationID == locationID) &&
			!r.CheckInTime.Before(day) && r.CheckInTime.Before(end)
	}), nil
}

func (s *service) filter(ctx context.Context, match func(Record) bool) []Record {
	var out []Record
	for _, r := range s.repo.All(ctx) {
		if match(r) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Record) int {
		return a.CheckInTime.Compare(b.CheckInTime)
	})
	return out
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

type checkInRequest struct {
	MemberID   string `validate:"required"`
	LocationID string `validate:"required"`
}
