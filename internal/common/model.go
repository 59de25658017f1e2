package common

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and timestamps shared by every stored entity.
type Base struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func NewBase(now time.Time) Base {
	return Base{
		ID:        NewID(),
		CreatedAt: now,
	}
}

func (b Base) GetID() string {
	return b.ID
}

// Touch records a modification. updated_at never precedes created_at.
func (b *Base) Touch(now time.Time) {
	if now.Before(b.CreatedAt) {
		now = b.CreatedAt
	}
	b.UpdatedAt = &now
}

// EnsureID assigns a fresh id when b has none and reports whether it did.
func (b *Base) EnsureID() bool {
	if b.ID != "" {
		return false
	}
	b.ID = NewID()
	return true
}

func NewID() string {
	return uuid.NewString()
}

// Now is the clock used by services. UTC with the monotonic reading
// stripped, so values survive a JSON round trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Round(0)
}

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.Street, a.City, a.State, a.PostalCode, a.Country)
}

type AddressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (r AddressRequest) Address() Address {
	return Address{
		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

// StringPtr returns nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
