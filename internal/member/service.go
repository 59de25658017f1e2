package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitclub/internal/common"
	"fitclub/internal/logger"
	"fitclub/internal/metrics"
	"fitclub/internal/validation"
)

var ErrMemberNotFound = errors.New("member not found")

type Service interface {
	CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error)
	UpdateMember(ctx context.Context, id string, req UpdateMemberRequest) (*Member, error)
	ActivateMember(ctx context.Context, id string) (*Member, error)
	DeactivateMember(ctx context.Context, id string) (*Member, error)
	UpdateHealthInformation(ctx context.Context, id string, req HealthInfoRequest) (*Member, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	ListMembers(ctx context.Context, activeOnly bool) ([]Member, error)
	DeleteMember(ctx context.Context, id string) error
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

func (s *service) CreateMember(ctx context.Context, req CreateMemberRequest) (*Member, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	m := Member{
		Base:           common.NewBase(s.now()),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address.Address(),
		MembershipType: req.MembershipType,
		HealthInfo:     req.HealthInfo.HealthInformation(),
		HomeLocationID: req.HomeLocationID,
		IsActive:       true,
	}

	created, err := s.repo.Add(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	metrics.RecordMemberCreated(string(created.MembershipType))
	logger.Info("member created", "member_id", created.ID, "membership_type", created.MembershipType)
	return &created, nil
}

func (s *service) UpdateMember(ctx context.Context, id string, req UpdateMemberRequest) (*Member, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(m *Member) {
		req.apply(m)
		m.Touch(s.now())
	})
}

func (s *service) ActivateMember(ctx context.Context, id string) (*Member, error) {
	return s.mutate(ctx, id, func(m *Member) {
		m.Activate(s.now())
	})
}

func (s *service) DeactivateMember(ctx context.Context, id string) (*Member, error) {
	return s.mutate(ctx, id, func(m *Member) {
		m.Deactivate(s.now())
	})
}

func (s *service) UpdateHealthInformation(ctx context.Context, id string, req HealthInfoRequest) (*Member, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(m *Member) {
		m.UpdateHealthInfo(req.HealthInformation(), s.now())
	})
}

func (s *service) GetMember(ctx context.Context, id string) (*Member, error) {
	m, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrMemberNotFound
	}
	return &m, nil
}

func (s *service) ListMembers(ctx context.Context, activeOnly bool) ([]Member, error) {
	all := s.repo.All(ctx)
	if !activeOnly {
		return all, nil
	}

	members := make([]Member, 0, len(all))
	for _, m := range all {
		if m.IsActive {
			members = append(members, m)
		}
	}
	return members, nil
}

func (s *service) DeleteMember(ctx context.Context, id string) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if !found {
		return ErrMemberNotFound
	}

	logger.Info("member deleted", "member_id", id)
	return nil
}

func (s *service) mutate(ctx context.Context, id string, change func(*Member)) (*Member, error) {
	m, ok := s.repo.Get(ctx, id)
	if !ok {
		return nil, ErrMemberNotFound
	}

	change(&m)

	found, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}
	if !found {
		return nil, ErrMemberNotFound
	}
	return &m, nil
}
