package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitclub/internal/common"
	"fitclub/internal/store"
	"fitclub/internal/validation"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Add(ctx context.Context, r Record) (Record, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return r, args.Error(1)
	}
	return args.Get(0).(Record), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id string) (Record, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return Record{}, args.Bool(1)
	}
	return args.Get(0).(Record), args.Bool(1)
}

func (m *MockRepository) All(ctx context.Context) []Record {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]Record)
}

func (m *MockRepository) Update(ctx context.Context, r Record) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *service {
	return &service{
		repo: repo,
		now:  func() time.Time { return fixedNow },
	}
}

func openRecord(id, memberID string, checkIn time.Time) Record {
	return Record{
		Base:        common.Base{ID: id, CreatedAt: checkIn},
		MemberID:    memberID,
		LocationID:  "loc-1",
		CheckInTime: checkIn,
	}
}

func TestService_CheckIn(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("All", ctx).Return([]Record{}).Once()
	mockRepo.On("Add", ctx, mock.MatchedBy(func(r Record) bool {
		return r.MemberID == "m1" && r.LocationID == "loc-1" && r.CheckInTime.Equal(fixedNow)
	})).Return(nil, nil).Once()

	r, err := service.CheckIn(ctx, "m1", "loc-1", common.StringPtr("z1"))

	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "z1", *r.ZoneID)
	assert.True(t, r.IsActive())
	assert.Equal(t, fixedNow, r.CreatedAt)
	mockRepo.AssertExpectations(t)
}

func TestService_CheckIn_AlreadyCheckedIn(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("All", ctx).Return([]Record{openRecord("r1", "m1", fixedNow.Add(-time.Hour))}).Once()

	r, err := service.CheckIn(ctx, "m1", "loc-2", nil)

	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Contains(t, err.Error(), "r1")
	mockRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestService_CheckIn_OtherMemberActive(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("All", ctx).Return([]Record{openRecord("r1", "m2", fixedNow.Add(-time.Hour))}).Once()
	mockRepo.On("Add", ctx, mock.Anything).Return(nil, nil).Once()

	_, err := service.CheckIn(ctx, "m1", "loc-1", nil)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_CheckIn_Validation(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)

	_, err := service.CheckIn(context.Background(), "", "", nil)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	mockRepo.AssertNotCalled(t, "All", mock.Anything)
}

func TestService_CheckIn_StorageError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("All", ctx).Return(nil).Once()
	mockRepo.On("Add", ctx, mock.Anything).Return(Record{}, store.ErrStorage).Once()

	_, err := service.CheckIn(ctx, "m1", "loc-1", nil)

	assert.ErrorIs(t, err, store.ErrStorage)
}

func TestService_CheckOut(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	open := openRecord("r1", "m1", fixedNow.Add(-90*time.Minute))
	mockRepo.On("Get", ctx, "r1").Return(open, true).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(r Record) bool {
		return r.ID == "r1" && r.CheckOutTime != nil && r.CheckOutTime.Equal(fixedNow)
	})).Return(true, nil).Once()

	r, err := service.CheckOut(ctx, "r1")

	require.NoError(t, err)
	assert.False(t, r.IsActive())
	minutes, ok := r.Duration()
	assert.True(t, ok)
	assert.Equal(t, 90, minutes)
	require.NotNil(t, r.UpdatedAt)
	assert.Equal(t, fixedNow, *r.UpdatedAt)
	mockRepo.AssertExpectations(t)
}

func TestService_CheckOut_Errors(t *testing.T) {
	ctx := context.Background()
	closedAt := fixedNow.Add(-time.Minute)
	closed := openRecord("r2", "m1", fixedNow.Add(-time.Hour))
	closed.CheckOutTime = &closedAt

	tests := []struct {
		name    string
		setup   func(*MockRepository)
		wantErr error
	}{
		{
			name: "missing record",
			setup: func(m *MockRepository) {
				m.On("Get", ctx, "r2").Return(nil, false)
			},
			wantErr: ErrAttendanceNotFound,
		},
		{
			name: "already checked out",
			setup: func(m *MockRepository) {
				m.On("Get", ctx, "r2").Return(closed, true)
			},
			wantErr: ErrAlreadyCheckedOut,
		},
		{
			name: "removed before update",
			setup: func(m *MockRepository) {
				m.On("Get", ctx, "r2").Return(openRecord("r2", "m1", fixedNow.Add(-time.Hour)), true)
				m.On("Update", ctx, mock.Anything).Return(false, nil)
			},
			wantErr: ErrAttendanceNotFound,
		},
		{
			name: "storage failure",
			setup: func(m *MockRepository) {
				m.On("Get", ctx, "r2").Return(openRecord("r2", "m1", fixedNow.Add(-time.Hour)), true)
				m.On("Update", ctx, mock.Anything).Return(true, store.ErrStorage)
			},
			wantErr: store.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setup(mockRepo)
			service := newTestService(mockRepo)

			r, err := service.CheckOut(ctx, "r2")

			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_GetActiveAttendance(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	closedAt := fixedNow.Add(-2 * time.Hour)
	closed := openRecord("r1", "m1", fixedNow.Add(-3*time.Hour))
	closed.CheckOutTime = &closedAt
	mockRepo.On("All", ctx).Return([]Record{closed, openRecord("r2", "m1", fixedNow)})

	r, ok := service.GetActiveAttendance(ctx, "m1")
	require.True(t, ok)
	assert.Equal(t, "r2", r.ID)

	_, ok = service.GetActiveAttendance(ctx, "m9")
	assert.False(t, ok)
}

func TestService_GetRecord(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Get", ctx, "r1").Return(openRecord("r1", "m1", fixedNow), true).Once()
	mockRepo.On("Get", ctx, "nope").Return(nil, false).Once()

	r, err := service.GetRecord(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "m1", r.MemberID)

	_, err = service.GetRecord(ctx, "nope")
	assert.True(t, errors.Is(err, ErrAttendanceNotFound))
}

func TestService_Listings(t *testing.T) {
	mockRepo := new(MockRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	r1 := openRecord("r1", "m1", day.Add(18*time.Hour))
	r2 := openRecord("r2", "m1", day.Add(8*time.Hour))
	r3 := openRecord("r3", "m2", day.Add(9*time.Hour))
	r3.LocationID = "loc-2"
	r4 := openRecord("r4", "m1", day.Add(-16*time.Hour))
	mockRepo.On("All", ctx).Return([]Record{r1, r2, r3, r4})

	ids := func(records []Record) []string {
		out := make([]string, 0, len(records))
		for _, r := range records {
			out = append(out, r.ID)
		}
		return out
	}

	got, err := service.ListForMember(ctx, "m1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"r4", "r2", "r1"}, ids(got))

	from := day.Add(8 * time.Hour)
	to := day.Add(18 * time.Hour)
	got, err = service.ListForMember(ctx, "m1", &from, &to)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r1"}, ids(got), "bounds are inclusive")

	got, err = service.ListAll(ctx, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids(got))

	got, err = service.ListAll(ctx, nil, &from)
	require.NoError(t, err)
	assert.Equal(t, []string{"r4", "r2"}, ids(got))

	got, err = service.ListByDate(ctx, day, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r3", "r1"}, ids(got))

	got, err = service.ListByDate(ctx, day, "loc-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, ids(got))
}
