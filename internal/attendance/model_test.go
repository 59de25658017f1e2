package attendance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitclub/internal/common"
	"fitclub/internal/store"
)

func TestRecord_CheckOut(t *testing.T) {
	r := openRecord("r1", "m1", fixedNow)
	assert.True(t, r.IsActive())
	_, ok := r.Duration()
	assert.False(t, ok)

	require.NoError(t, r.CheckOut(fixedNow.Add(45*time.Minute+30*time.Second)))
	assert.False(t, r.IsActive())
	minutes, ok := r.Duration()
	assert.True(t, ok)
	assert.Equal(t, 45, minutes)

	assert.ErrorIs(t, r.CheckOut(fixedNow.Add(time.Hour)), ErrAlreadyCheckedOut)
	assert.Equal(t, fixedNow.Add(45*time.Minute+30*time.Second), *r.CheckOutTime)
}

func TestRecord_CheckOutNeverPrecedesCheckIn(t *testing.T) {
	r := openRecord("r1", "m1", fixedNow)

	require.NoError(t, r.CheckOut(fixedNow.Add(-time.Minute)))

	assert.Equal(t, fixedNow, *r.CheckOutTime)
	minutes, _ := r.Duration()
	assert.Zero(t, minutes)
}

func TestRecord_JSON(t *testing.T) {
	r := openRecord("r1", "m1", fixedNow)
	r.ZoneID = common.StringPtr("z1")

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"id", "created_at", "updated_at", "member_id", "location_id", "zone_id", "check_in_time", "check_out_time"} {
		assert.Contains(t, fields, key)
	}
	assert.Nil(t, fields["check_out_time"])
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	docs := store.NewMemoryStore()

	repo, err := NewRepository(ctx, docs)
	require.NoError(t, err)

	svc := newTestService(repo)
	r, err := svc.CheckIn(ctx, "m1", "loc-1", common.StringPtr("z1"))
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	_, err = svc.CheckOut(ctx, r.ID)
	require.NoError(t, err)

	reloaded, err := NewRepository(ctx, docs)
	require.NoError(t, err)
	assert.Equal(t, repo.All(ctx), reloaded.All(ctx))
}
