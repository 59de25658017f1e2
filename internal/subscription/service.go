package subscription

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
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidTransition    = errors.New("invalid subscription status transition")
	ErrInvalidPeriod        = errors.New("invalid subscription period")
)

type Service interface {
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error)
	GetSubscription(ctx context.Context, id string) (*Subscription, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	ListForMember(ctx context.Context, memberID string) ([]Subscription, error)
	ActiveForMember(ctx context.Context, memberID string) (*Subscription, bool)
	CancelSubscription(ctx context.Context, id string) (*Subscription, error)
	RenewSubscription(ctx context.Context, id string, newEnd time.Time) (*Subscription, error)
	DeleteSubscription(ctx context.Context, id string) error
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

// CreateSubscription stores a new subscription. The end date defaults to one
// billing period after the start, the amount to the plan's quote and the
// status to pending.
func (s *service) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*Subscription, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	start := req.StartDate.UTC()
	end := start.AddDate(0, req.PaymentFrequency.Months(), 0)
	if req.EndDate != nil {
		end = req.EndDate.UTC()
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidPeriod)
	}

	var amount float64
	if req.Amount != nil {
		amount = *req.Amount
	} else if plan, ok := FindPlan(req.PlanType); ok {
		amount = plan.Quote(req.PaymentFrequency)
	}

	status := StatusPending
	if req.Status != nil {
		status = *req.Status
	}

	now := s.now()
	sub := Subscription{
		Base:             common.NewBase(now),
		MemberID:         req.MemberID,
		PlanType:         req.PlanType,
		PaymentFrequency: req.PaymentFrequency,
		StartDate:        start,
		EndDate:          end,
		Amount:           amount,
		Status:           status,
		PaymentMethod:    req.PaymentMethod,
		AutoRenew:        req.AutoRenew,
	}
	if status == StatusActive {
		sub.LastPaymentDate = &start
		sub.NextPaymentDate = nextPayment(sub.AutoRenew, end)
	}

	created, err := s.repo.Add(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	metrics.RecordSubscription(string(created.PlanType))
	logger.Info("subscription created", "subscription_id", created.ID, "member_id", created.MemberID, "plan", created.PlanType, "status", created.Status)
	return &created, nil
}

func (s *service) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	sub, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (s *service) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	return s.repo.All(ctx), nil
}

// ListForMember returns the member's subscriptions, oldest period first.
func (s *service) ListForMember(ctx context.Context, memberID string) ([]Subscription, error) {
	var out []Subscription
	for _, sub := range s.repo.All(ctx) {
		if sub.MemberID == memberID {
			out = append(out, sub)
		}
	}
	slices.SortStableFunc(out, func(a, b Subscription) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return out, nil
}

// ActiveForMember returns the member's active subscription that runs the
// longest.
func (s *service) ActiveForMember(ctx context.Context, memberID string) (*Subscription, bool) {
	now := s.now()

	var best *Subscription
	for _, sub := range s.repo.All(ctx) {
		sub := sub
		if sub.MemberID != memberID || !sub.IsActive(now) {
			continue
		}
		if best == nil || sub.EndDate.After(best.EndDate) {
			best = &sub
		}
	}
	return best, best != nil
}

func (s *service) CancelSubscription(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.mutate(ctx, id, func(sub *Subscription, now time.Time) error {
		return sub.Cancel(now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("subscription cancelled", "subscription_id", id, "member_id", sub.MemberID)
	return sub, nil
}

func (s *service) RenewSubscription(ctx context.Context, id string, newEnd time.Time) (*Subscription, error) {
	sub, err := s.mutate(ctx, id, func(sub *Subscription, now time.Time) error {
		return sub.Renew(newEnd.UTC(), now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("subscription renewed", "subscription_id", id, "member_id", sub.MemberID, "end_date", sub.EndDate)
	return sub, nil
}

func (s *service) DeleteSubscription(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if !found {
		return ErrSubscriptionNotFound
	}

	logger.Info("subscription deleted", "subscription_id", id)
	return nil
}

func (s *service) mutate(ctx context.Context, id string, change func(*Subscription, time.Time) error) (*Subscription, error) {
	sub, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrSubscriptionNotFound
	}

	if err := change(&sub, s.now()); err != nil {
		return nil, err
	}

	found, err := s.repo.Update(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	if !found {
		return nil, ErrSubscriptionNotFound
	}
	return &sub, nil
}
