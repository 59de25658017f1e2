package subscription

import (
	"fmt"
	"math"
	"time"

	"fitclub/internal/common"
	"fitclub/internal/member"
)

type PaymentFrequency string

const (
	FrequencyMonthly   PaymentFrequency = "monthly"
	FrequencyQuarterly PaymentFrequency = "quarterly"
	FrequencyAnnual    PaymentFrequency = "annual"
)

func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	return common.ParseTag("payment frequency", s, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual)
}

func (f *PaymentFrequency) UnmarshalJSON(data []byte) error {
	v, err := common.UnmarshalTag(data, ParsePaymentFrequency)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Months is the length of one billing period.
func (f PaymentFrequency) Months() int {
	switch f {
	case FrequencyQuarterly:
		return 3
	case FrequencyAnnual:
		return 12
	default:
		return 1
	}
}

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
)

func ParseStatus(s string) (Status, error) {
	return common.ParseTag("subscription status", s, StatusActive, StatusExpired, StatusCancelled, StatusPending)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := common.UnmarshalTag(data, ParseStatus)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type Subscription struct {
	common.Base
	MemberID         string                `json:"member_id"`
	PlanType         member.MembershipType `json:"plan_type"`
	PaymentFrequency PaymentFrequency      `json:"payment_frequency"`
	StartDate        time.Time             `json:"start_date"`
	EndDate          time.Time             `json:"end_date"`
	Amount           float64               `json:"amount"`
	Status           Status                `json:"status"`
	PaymentMethod    string                `json:"payment_method"`
	AutoRenew        bool                  `json:"auto_renew"`
	LastPaymentDate  *time.Time            `json:"last_payment_date"`
	NextPaymentDate  *time.Time            `json:"next_payment_date"`
}

// IsActive reports whether the subscription is active and now falls within
// its period, both ends included.
func (s Subscription) IsActive(now time.Time) bool {
	return s.Status == StatusActive && !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// DaysUntilExpiry counts whole days left. Zero unless active and unexpired.
func (s Subscription) DaysUntilExpiry(now time.Time) int {
	if s.Status != StatusActive || now.After(s.EndDate) {
		return 0
	}
	return int(s.EndDate.Sub(now) / (24 * time.Hour))
}

func (s *Subscription) Cancel(now time.Time) error {
	if s.Status == StatusCancelled {
		return fmt.Errorf("%w: already %s", ErrInvalidTransition, s.Status)
	}
	s.Status = StatusCancelled
	s.AutoRenew = false
	s.NextPaymentDate = nil
	s.Touch(now)
	return nil
}

// Renew starts a new period at the old end date and records the payment.
func (s *Subscription) Renew(newEnd, now time.Time) error {
	if !newEnd.After(s.EndDate) {
		return fmt.Errorf("%w: new end date must be after %s", ErrInvalidPeriod, s.EndDate.Format(time.DateOnly))
	}
	s.StartDate = s.EndDate
	s.EndDate = newEnd
	s.Status = StatusActive
	s.LastPaymentDate = &now
	s.NextPaymentDate = nextPayment(s.AutoRenew, newEnd)
	s.Touch(now)
	return nil
}

func nextPayment(autoRenew bool, end time.Time) *time.Time {
	if !autoRenew {
		return nil
	}
	return &end
}

type Plan struct {
	Type         member.MembershipType `json:"type"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	MonthlyPrice float64               `json:"monthly_price"`
}

func Plans() []Plan {
	return []Plan{
		{
			Type:         member.MembershipRegular,
			Name:         "Regular",
			Description:  "Gym floor and locker rooms at the home location",
			MonthlyPrice: 49.99,
		},
		{
			Type:         member.MembershipPremium,
			Name:         "Premium",
			Description:  "Every location, group classes and one assessment a month",
			MonthlyPrice: 89.99,
		},
		{
			Type:         member.MembershipTrial,
			Name:         "Trial",
			Description:  "Gym floor access for the first month",
			MonthlyPrice: 0,
		},
	}
}

func FindPlan(t member.MembershipType) (Plan, bool) {
	for _, p := range Plans() {
		if p.Type == t {
			return p, true
		}
	}
	return Plan{}, false
}

// Quote is the amount charged per billing period, rounded to cents.
func (p Plan) Quote(f PaymentFrequency) float64 {
	return math.Round(p.MonthlyPrice*float64(f.Months())*100) / 100
}

type CreateSubscriptionRequest struct {
	MemberID         string                `json:"member_id" validate:"required"`
	PlanType         member.MembershipType `json:"plan_type" validate:"required,oneof=regular premium trial"`
	PaymentFrequency PaymentFrequency      `json:"payment_frequency" validate:"required,oneof=monthly quarterly annual"`
	StartDate        time.Time             `json:"start_date" validate:"required"`
	EndDate          *time.Time            `json:"end_date"`
	Amount           *float64              `json:"amount" validate:"omitempty,gte=0"`
	PaymentMethod    string                `json:"payment_method" validate:"required"`
	AutoRenew        bool                  `json:"auto_renew"`
	Status           *Status               `json:"status" validate:"omitempty,oneof=active expired cancelled pending"`
}
