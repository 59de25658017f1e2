package member

import (
	"strings"
	"time"

	"fitclub/internal/common"
)

type MembershipType string

const (
	MembershipRegular MembershipType = "regular"
	MembershipPremium MembershipType = "premium"
	MembershipTrial   MembershipType = "trial"
)

func ParseMembershipType(s string) (MembershipType, error) {
	return common.ParseTag("membership type", s, MembershipRegular, MembershipPremium, MembershipTrial)
}

func (t *MembershipType) UnmarshalJSON(data []byte) error {
	v, err := common.UnmarshalTag(data, ParseMembershipType)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type HealthInformation struct {
	Height                float64    `json:"height"`
	Weight                float64    `json:"weight"`
	MedicalConditions     []string   `json:"medical_conditions"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	LastHealthCheck       *time.Time `json:"last_health_check"`
	Notes                 *string    `json:"notes"`
}

type Member struct {
	common.Base
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Address        common.Address    `json:"address"`
	MembershipType MembershipType    `json:"membership_type"`
	HealthInfo     HealthInformation `json:"health_info"`
	HomeLocationID *string           `json:"home_location_id"`
	IsActive       bool              `json:"is_active"`
}

func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

func (m *Member) Activate(now time.Time) {
	m.IsActive = true
	m.Touch(now)
}

func (m *Member) Deactivate(now time.Time) {
	m.IsActive = false
	m.Touch(now)
}

func (m *Member) UpdateHealthInfo(info HealthInformation, now time.Time) {
	m.HealthInfo = info
	m.Touch(now)
}

type HealthInfoRequest struct {
	Height                float64    `json:"height" validate:"gt=0"`
	Weight                float64    `json:"weight" validate:"gt=0"`
	MedicalConditions     []string   `json:"medical_conditions"`
	EmergencyContactName  string     `json:"emergency_contact_name" validate:"required"`
	EmergencyContactPhone string     `json:"emergency_contact_phone" validate:"required"`
	LastHealthCheck       *time.Time `json:"last_health_check"`
	Notes                 *string    `json:"notes"`
}

func (r HealthInfoRequest) HealthInformation() HealthInformation {
	conditions := r.MedicalConditions
	if conditions == nil {
		conditions = []string{}
	}
	return HealthInformation{
		Height:                r.Height,
		Weight:                r.Weight,
		MedicalConditions:     conditions,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		LastHealthCheck:       r.LastHealthCheck,
		Notes:                 r.Notes,
	}
}

type CreateMemberRequest struct {
	FirstName      string                `json:"first_name" validate:"required"`
	LastName       string                `json:"last_name" validate:"required"`
	Email          string                `json:"email" validate:"required,email"`
	Phone          string                `json:"phone" validate:"required"`
	Address        common.AddressRequest `json:"address"`
	MembershipType MembershipType        `json:"membership_type" validate:"required,oneof=regular premium trial"`
	HealthInfo     HealthInfoRequest     `json:"health_info"`
	HomeLocationID *string               `json:"home_location_id"`
}

// UpdateMemberRequest patches a member. Nil fields are left unchanged; an
// empty HomeLocationID clears the home location.
type UpdateMemberRequest struct {
	FirstName      *string                `json:"first_name" validate:"omitempty,min=1"`
	LastName       *string                `json:"last_name" validate:"omitempty,min=1"`
	Email          *string                `json:"email" validate:"omitempty,email"`
	Phone          *string                `json:"phone" validate:"omitempty,min=1"`
	Address        *common.AddressRequest `json:"address"`
	MembershipType *MembershipType        `json:"membership_type" validate:"omitempty,oneof=regular premium trial"`
	HomeLocationID *string                `json:"home_location_id"`
}

func (r UpdateMemberRequest) apply(m *Member) {
	if r.FirstName != nil {
		m.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.LastName = *r.LastName
	}
	if r.Email != nil {
		m.Email = *r.Email
	}
	if r.Phone != nil {
		m.Phone = *r.Phone
	}
	if r.Address != nil {
		m.Address = r.Address.Address()
	}
	if r.MembershipType != nil {
		m.MembershipType = *r.MembershipType
	}
	if r.HomeLocationID != nil {
		m.HomeLocationID = common.StringPtr(*r.HomeLocationID)
	}
}
