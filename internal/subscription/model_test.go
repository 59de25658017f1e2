package subscription

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitclub/internal/common"
	"fitclub/internal/member"
	"fitclub/internal/store"
)

func TestPaymentFrequency(t *testing.T) {
	tests := []struct {
		raw    string
		months int
	}{
		{"monthly", 1},
		{"quarterly", 3},
		{"annual", 12},
	}
	for _, tt := range tests {
		f, err := ParsePaymentFrequency(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.months, f.Months())
	}

	_, err := ParsePaymentFrequency("weekly")
	var tagErr *common.UnknownTagError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, `unknown payment frequency "weekly"`, err.Error())
}

func TestStatus_UnmarshalUnknown(t *testing.T) {
	var s Status
	err := json.Unmarshal([]byte(`"frozen"`), &s)
	assert.Error(t, err)
}

func TestSubscription_IsActive(t *testing.T) {
	sub := activeSubscription("s1", "m1")

	assert.True(t, sub.IsActive(sub.StartDate))
	assert.True(t, sub.IsActive(sub.EndDate))
	assert.False(t, sub.IsActive(sub.EndDate.Add(time.Second)))
	assert.False(t, sub.IsActive(sub.StartDate.Add(-time.Second)))

	sub.Status = StatusPending
	assert.False(t, sub.IsActive(fixedNow))
}

func TestSubscription_DaysUntilExpiry(t *testing.T) {
	sub := activeSubscription("s1", "m1")
	sub.EndDate = fixedNow.Add(10*24*time.Hour + 12*time.Hour)

	assert.Equal(t, 10, sub.DaysUntilExpiry(fixedNow))
	assert.Zero(t, sub.DaysUntilExpiry(sub.EndDate.Add(time.Hour)))

	sub.Status = StatusCancelled
	assert.Zero(t, sub.DaysUntilExpiry(fixedNow))
}

func TestSubscription_Cancel(t *testing.T) {
	sub := activeSubscription("s1", "m1")

	require.NoError(t, sub.Cancel(fixedNow))
	assert.Equal(t, StatusCancelled, sub.Status)
	assert.False(t, sub.AutoRenew)
	assert.Nil(t, sub.NextPaymentDate)
	assert.Equal(t, fixedNow, *sub.UpdatedAt)

	assert.ErrorIs(t, sub.Cancel(fixedNow), ErrInvalidTransition)
}

func TestSubscription_Renew(t *testing.T) {
	sub := activeSubscription("s1", "m1")
	sub.Status = StatusExpired
	oldEnd := sub.EndDate
	newEnd := oldEnd.AddDate(0, 1, 0)

	require.NoError(t, sub.Renew(newEnd, fixedNow))
	assert.Equal(t, oldEnd, sub.StartDate)
	assert.Equal(t, newEnd, sub.EndDate)
	assert.Equal(t, StatusActive, sub.Status)
	assert.Equal(t, fixedNow, *sub.LastPaymentDate)
	assert.Equal(t, newEnd, *sub.NextPaymentDate)

	err := sub.Renew(newEnd, fixedNow)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPlan_Quote(t *testing.T) {
	plan, ok := FindPlan(member.MembershipPremium)
	require.True(t, ok)

	assert.Equal(t, 89.99, plan.Quote(FrequencyMonthly))
	assert.Equal(t, 269.97, plan.Quote(FrequencyQuarterly))
	assert.Equal(t, 1079.88, plan.Quote(FrequencyAnnual))

	trial, ok := FindPlan(member.MembershipTrial)
	require.True(t, ok)
	assert.Zero(t, trial.Quote(FrequencyAnnual))

	_, ok = FindPlan("platinum")
	assert.False(t, ok)
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	docs := store.NewMemoryStore()

	repo, err := NewRepository(ctx, docs)
	require.NoError(t, err)

	sub := activeSubscription("s1", "m1")
	_, err = repo.Add(ctx, sub)
	require.NoError(t, err)

	data, err := docs.Read(ctx, Collection)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"plan_type": "premium"`)
	assert.Contains(t, string(data), `"payment_frequency": "monthly"`)

	reloaded, err := NewRepository(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, []Subscription{sub}, reloaded.All(ctx))
}
