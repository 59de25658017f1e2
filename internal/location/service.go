package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitclub/internal/common"
	"fitclub/internal/logger"
	"fitclub/internal/validation"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrZoneNotFound     = errors.New("workout zone not found")
)

type Service interface {
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error)
	UpdateLocation(ctx context.Context, id string, req UpdateLocationRequest) (*Location, error)
	DeactivateLocation(ctx context.Context, id string) (*Location, error)
	GetLocation(ctx context.Context, id string) (*Location, error)
	ListLocations(ctx context.Context, activeOnly bool) ([]Location, error)
	DeleteLocation(ctx context.Context, id string) error

	AddWorkoutZone(ctx context.Context, locationID string, req CreateZoneRequest) (*WorkoutZone, error)
	RemoveWorkoutZone(ctx context.Context, locationID, zoneID string) error
	GetWorkoutZone(ctx context.Context, locationID, zoneID string) (*WorkoutZone, error)
	UpdateZoneSchedule(ctx context.Context, locationID, zoneID, day string, times []string) (*WorkoutZone, error)
	IsZoneAvailable(ctx context.Context, locationID, zoneID, day, at string) (bool, error)
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

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	hours, err := normalizeHours(req.OpeningHours)
	if err != nil {
		return nil, err
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	if hours == nil {
		hours = map[string]string{}
	}

	l := Location{
		Base:          common.NewBase(s.now()),
		Name:          req.Name,
		Address:       req.Address.Address(),
		ManagerID:     req.ManagerID,
		WorkoutZones:  []WorkoutZone{},
		Amenities:     amenities,
		TotalCapacity: req.TotalCapacity,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		OpeningHours:  hours,
		IsActive:      true,
	}

	created, err := s.repo.Add(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	logger.Info("location created", "location_id", created.ID, "name", created.Name)
	return &created, nil
}

func (s *service) UpdateLocation(ctx context.Context, id string, req UpdateLocationRequest) (*Location, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	hours, err := normalizeHours(req.OpeningHours)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(l *Location) error {
		req.apply(l, hours)
		l.Touch(s.now())
		return nil
	})
}

func (s *service) DeactivateLocation(ctx context.Context, id string) (*Location, error) {
	return s.mutate(ctx, id, func(l *Location) error {
		l.IsActive = false
		l.Touch(s.now())
		return nil
	})
}

func (s *service) GetLocation(ctx context.Context, id string) (*Location, error) {
	l, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrLocationNotFound
	}
	return &l, nil
}

func (s *service) ListLocations(ctx context.Context, activeOnly bool) ([]Location, error) {
	all := s.repo.All(ctx)
	if !activeOnly {
		return all, nil
	}

	locations := make([]Location, 0, len(all))
	for _, l := range all {
		if l.IsActive {
			locations = append(locations, l)
		}
	}
	return locations, nil
}

// DeleteLocation removes the location and its zones. Appointments and
// attendance records that reference it are left as they are.
func (s *service) DeleteLocation(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if !found {
		return ErrLocationNotFound
	}

	logger.Info("location deleted", "location_id", id)
	return nil
}

func (s *service) AddWorkoutZone(ctx context.Context, locationID string, req CreateZoneRequest) (*WorkoutZone, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	schedule, err := normalizeSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}

	equipment := req.Equipment
	if equipment == nil {
		equipment = []string{}
	}

	now := s.now()
	zone := WorkoutZone{
		Base:        common.NewBase(now),
		Name:        req.Name,
		Type:        req.Type,
		Capacity:    req.Capacity,
		Equipment:   equipment,
		AttendantID: req.AttendantID,
		Description: req.Description,
		IsActive:    true,
		Schedule:    schedule,
	}

	if _, err := s.mutate(ctx, locationID, func(l *Location) error {
		l.AddZone(zone, now)
		return nil
	}); err != nil {
		return nil, err
	}

	logger.Info("workout zone added", "location_id", locationID, "zone_id", zone.ID)
	return &zone, nil
}

func (s *service) RemoveWorkoutZone(ctx context.Context, locationID, zoneID string) error {
	_, err := s.mutate(ctx, locationID, func(l *Location) error {
		if !l.RemoveZone(zoneID, s.now()) {
			return ErrZoneNotFound
		}
		return nil
	})
	return err
}

func (s *service) GetWorkoutZone(ctx context.Context, locationID, zoneID string) (*WorkoutZone, error) {
	l, ok := s.repo.Get(ctx, locationID)
	if !ok {
		return nil, ErrLocationNotFound
	}

	zone, ok := l.Zone(zoneID)
	if !ok {
		return nil, ErrZoneNotFound
	}
	return &zone, nil
}

func (s *service) UpdateZoneSchedule(ctx context.Context, locationID, zoneID, day string, times []string) (*WorkoutZone, error) {
	day, err := ParseDay(day)
	if err != nil {
		return nil, err
	}
	if times == nil {
		times = []string{}
	}
	if err := validation.Var("times", times, "dive,hhmm"); err != nil {
		return nil, err
	}

	var updated WorkoutZone
	_, err = s.mutate(ctx, locationID, func(l *Location) error {
		i := l.zoneIndex(zoneID)
		if i < 0 {
			return ErrZoneNotFound
		}
		now := s.now()
		l.WorkoutZones[i].UpdateSchedule(day, times, now)
		l.Touch(now)
		updated = l.WorkoutZones[i]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *service) IsZoneAvailable(ctx context.Context, locationID, zoneID, day, at string) (bool, error) {
	day, err := ParseDay(day)
	if err != nil {
		return false, err
	}

	zone, err := s.GetWorkoutZone(ctx, locationID, zoneID)
	if err != nil {
		return false, err
	}
	return zone.IsActive && zone.IsAvailable(day, at), nil
}

// mutate applies change to a private copy of the location and persists it.
// Nothing is written when change fails.
func (s *service) mutate(ctx context.Context, id string, change func(*Location) error) (*Location, error) {
	stored, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrLocationNotFound
	}

	l := stored.clone()
	if err := change(&l); err != nil {
		return nil, err
	}

	found, err := s.repo.Update(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	if !found {
		return nil, ErrLocationNotFound
	}
	return &l, nil
}

func normalizeHours(hours map[string]string) (map[string]string, error) {
	if hours == nil {
		return nil, nil
	}
	out := make(map[string]string, len(hours))
	for day, span := range hours {
		d, err := ParseDay(day)
		if err != nil {
			return nil, err
		}
		out[d] = span
	}
	return out, nil
}

func normalizeSchedule(schedule map[string][]string) (map[string][]string, error) {
	out := make(map[string][]string, len(schedule))
	for day, times := range schedule {
		d, err := ParseDay(day)
		if err != nil {
			return nil, err
		}
		out[d] = times
	}
	return out, nil
}
