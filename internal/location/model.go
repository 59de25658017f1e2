package location

import (
	"maps"
	"slices"
	"time"

	"fitclub/internal/common"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ParseDay normalizes a weekday name to its lowercase form.
func ParseDay(s string) (string, error) {
	return common.ParseTag("day", s, weekdays...)
}

func DayOf(t time.Time) string {
	return weekdays[(int(t.Weekday())+6)%7]
}

type WorkoutZone struct {
	common.Base
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Capacity    int                 `json:"capacity"`
	Equipment   []string            `json:"equipment"`
	AttendantID *string             `json:"attendant_id"`
	Description *string             `json:"description"`
	IsActive    bool                `json:"is_active"`
	Schedule    map[string][]string `json:"schedule"`
}

func (z *WorkoutZone) UpdateSchedule(day string, times []string, now time.Time) {
	if z.Schedule == nil {
		z.Schedule = make(map[string][]string)
	}
	z.Schedule[day] = times
	z.Touch(now)
}

// IsAvailable reports whether at is one of the scheduled times on day.
func (z WorkoutZone) IsAvailable(day, at string) bool {
	return slices.Contains(z.Schedule[day], at)
}

func (z WorkoutZone) clone() WorkoutZone {
	z.Equipment = slices.Clone(z.Equipment)
	if z.Schedule != nil {
		schedule := make(map[string][]string, len(z.Schedule))
		for day, times := range z.Schedule {
			schedule[day] = slices.Clone(times)
		}
		z.Schedule = schedule
	}
	return z
}

type Location struct {
	common.Base
	Name          string            `json:"name"`
	Address       common.Address    `json:"address"`
	ManagerID     string            `json:"manager_id"`
	WorkoutZones  []WorkoutZone     `json:"workout_zones"`
	Amenities     []string          `json:"amenities"`
	TotalCapacity int               `json:"total_capacity"`
	ContactPhone  string            `json:"contact_phone"`
	ContactEmail  string            `json:"contact_email"`
	OpeningHours  map[string]string `json:"opening_hours"`
	IsActive      bool              `json:"is_active"`
}

func (l *Location) AddZone(z WorkoutZone, now time.Time) {
	l.WorkoutZones = append(slices.Clip(l.WorkoutZones), z)
	l.Touch(now)
}

func (l *Location) RemoveZone(zoneID string, now time.Time) bool {
	i := l.zoneIndex(zoneID)
	if i < 0 {
		return false
	}
	l.WorkoutZones = slices.Delete(slices.Clone(l.WorkoutZones), i, i+1)
	l.Touch(now)
	return true
}

func (l Location) Zone(zoneID string) (WorkoutZone, bool) {
	if i := l.zoneIndex(zoneID); i >= 0 {
		return l.WorkoutZones[i], true
	}
	return WorkoutZone{}, false
}

func (l Location) zoneIndex(zoneID string) int {
	return slices.IndexFunc(l.WorkoutZones, func(z WorkoutZone) bool {
		return z.ID == zoneID
	})
}

// EnsureID assigns missing ids to the location and to each of its zones.
func (l *Location) EnsureID() bool {
	assigned := l.Base.EnsureID()
	for i := range l.WorkoutZones {
		if l.WorkoutZones[i].EnsureID() {
			assigned = true
		}
	}
	return assigned
}

// clone returns a copy that shares no slices or maps with l.
func (l Location) clone() Location {
	l.Amenities = slices.Clone(l.Amenities)
	l.OpeningHours = maps.Clone(l.OpeningHours)
	if l.WorkoutZones != nil {
		zones := make([]WorkoutZone, len(l.WorkoutZones))
		for i, z := range l.WorkoutZones {
			zones[i] = z.clone()
		}
		l.WorkoutZones = zones
	}
	return l
}

type CreateLocationRequest struct {
	Name          string                `json:"name" validate:"required"`
	Address       common.AddressRequest `json:"address"`
	ManagerID     string                `json:"manager_id" validate:"required"`
	Amenities     []string              `json:"amenities"`
	TotalCapacity int                   `json:"total_capacity" validate:"gt=0"`
	ContactPhone  string                `json:"contact_phone" validate:"required"`
	ContactEmail  string                `json:"contact_email" validate:"required,email"`
	OpeningHours  map[string]string     `json:"opening_hours" validate:"omitempty,dive,hhmm_range"`
}

// UpdateLocationRequest patches a location. Nil fields are left unchanged.
type UpdateLocationRequest struct {
	Name          *string                `json:"name" validate:"omitempty,min=1"`
	Address       *common.AddressRequest `json:"address"`
	ManagerID     *string                `json:"manager_id" validate:"omitempty,min=1"`
	Amenities     []string               `json:"amenities"`
	TotalCapacity *int                   `json:"total_capacity" validate:"omitempty,gt=0"`
	ContactPhone  *string                `json:"contact_phone" validate:"omitempty,min=1"`
	ContactEmail  *string                `json:"contact_email" validate:"omitempty,email"`
	OpeningHours  map[string]string      `json:"opening_hours" validate:"omitempty,dive,hhmm_range"`
}

func (r UpdateLocationRequest) apply(l *Location, hours map[string]string) {
	if r.Name != nil {
		l.Name = *r.Name
	}
	if r.Address != nil {
		l.Address = r.Address.Address()
	}
	if r.ManagerID != nil {
		l.ManagerID = *r.ManagerID
	}
	if r.Amenities != nil {
		l.Amenities = slices.Clone(r.Amenities)
	}
	if r.TotalCapacity != nil {
		l.TotalCapacity = *r.TotalCapacity
	}
	if r.ContactPhone != nil {
		l.ContactPhone = *r.ContactPhone
	}
	if r.ContactEmail != nil {
		l.ContactEmail = *r.ContactEmail
	}
	if hours != nil {
		l.OpeningHours = maps.Clone(hours)
	}
}

type CreateZoneRequest struct {
	Name        string              `json:"name" validate:"required"`
	Type        string              `json:"type" validate:"required"`
	Capacity    int                 `json:"capacity" validate:"gt=0"`
	Equipment   []string            `json:"equipment"`
	AttendantID *string             `json:"attendant_id"`
	Description *string             `json:"description"`
	Schedule    map[string][]string `json:"schedule" validate:"omitempty,dive,dive,hhmm"`
}
