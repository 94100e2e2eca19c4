package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/catalog"
	waitlistRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type waitlistRepoMock struct {
	mock.Mock
}

func (m *waitlistRepoMock) Create(ctx context.Context, userID int64, slot domain.Slot) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, userID, slot)
	if e := args.Get(0); e != nil {
		return e.(*domain.WaitlistEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *waitlistRepoMock) ExistsWaiting(ctx context.Context, userID int64, slot domain.Slot) (bool, error) {
	args := m.Called(ctx, userID, slot)
	return args.Bool(0), args.Error(1)
}

func (m *waitlistRepoMock) GetByUserID(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error) {
	args := m.Called(ctx, userID)
	if e := args.Get(0); e != nil {
		return e.([]*domain.WaitlistEntry), args.Error(1)
	}
	return nil, args.Error(1)
}

type slotLockerMock struct {
	mock.Mock
}

func (m *slotLockerMock) LockSlot(ctx context.Context, slot domain.Slot) error {
	return m.Called(ctx, slot).Error(0)
}

type courtRepoMock struct {
	mock.Mock
}

func (m *courtRepoMock) GetCourtByID(ctx context.Context, id int64) (*domain.Court, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.Court), args.Error(1)
	}
	return nil, args.Error(1)
}

// txManagerStub выполняет fn без транзакции
type txManagerStub struct{}

func (txManagerStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type metricsStub struct {
	joins int
}

func (m *metricsStub) RecordWaitlistJoin() {
	m.joins++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	svc     *Service
	entries *waitlistRepoMock
	locker  *slotLockerMock
	courts  *courtRepoMock
	metrics *metricsStub
}

func newFixture() *fixture {
	f := &fixture{
		entries: &waitlistRepoMock{},
		locker:  &slotLockerMock{},
		courts:  &courtRepoMock{},
		metrics: &metricsStub{},
	}
	f.svc = NewService(f.entries, f.locker, f.courts, txManagerStub{}, f.metrics, time.UTC, logger.Discard())
	f.svc.timeProvider = fixedTime{now: time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)}
	return f
}

var (
	slotStart = time.Date(2025, 10, 18, 19, 0, 0, 0, time.UTC)
	testSlot  = domain.Slot{CourtID: 1, StartTime: slotStart}
)

func TestService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(nil)
		f.courts.On("GetCourtByID", ctx, int64(1)).Return(&domain.Court{ID: 1, IsActive: true}, nil)
		f.entries.On("ExistsWaiting", ctx, int64(7), testSlot).Return(false, nil)
		f.entries.On("Create", ctx, int64(7), testSlot).Return(&domain.WaitlistEntry{
			ID:        3,
			UserID:    7,
			CourtID:   1,
			StartTime: slotStart,
			Status:    domain.WaitlistWaiting,
		}, nil)

		resp, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart})

		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "waiting", resp.Status)
		assert.Nil(t, resp.NotifiedAt)
		assert.Equal(t, 1, f.metrics.joins)
		f.locker.AssertExpectations(t)
	})

	t.Run("duplicate by pre-check", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(nil)
		f.courts.On("GetCourtByID", ctx, int64(1)).Return(&domain.Court{ID: 1, IsActive: true}, nil)
		f.entries.On("ExistsWaiting", ctx, int64(7), testSlot).Return(true, nil)

		_, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart})

		assert.ErrorIs(t, err, ErrDuplicateWaitlistEntry)
		f.entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, 0, f.metrics.joins)
	})

	t.Run("duplicate by unique index", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(nil)
		f.courts.On("GetCourtByID", ctx, int64(1)).Return(&domain.Court{ID: 1, IsActive: true}, nil)
		f.entries.On("ExistsWaiting", ctx, int64(7), testSlot).Return(false, nil)
		f.entries.On("Create", ctx, int64(7), testSlot).Return(nil, waitlistRepo.ErrDuplicateEntry)

		_, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart})

		assert.ErrorIs(t, err, ErrDuplicateWaitlistEntry)
	})

	t.Run("start in another zone is stored in UTC", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(nil)
		f.courts.On("GetCourtByID", ctx, int64(1)).Return(&domain.Court{ID: 1, IsActive: true}, nil)
		f.entries.On("ExistsWaiting", ctx, int64(7), testSlot).Return(false, nil)
		f.entries.On("Create", ctx, int64(7), testSlot).Return(&domain.WaitlistEntry{ID: 1, Status: domain.WaitlistWaiting}, nil)

		cet := time.FixedZone("CET", 3600)
		_, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart.In(cet)})

		require.NoError(t, err)
		f.entries.AssertExpectations(t)
	})

	t.Run("inactive court", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(nil)
		f.courts.On("GetCourtByID", ctx, int64(1)).Return(&domain.Court{ID: 1, IsActive: false}, nil)

		_, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart})

		assert.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("unknown court", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(nil)
		f.courts.On("GetCourtByID", ctx, int64(1)).Return(nil, catalogRepo.ErrCourtNotFound)

		_, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart})

		assert.ErrorIs(t, err, ErrCourtNotFound)
	})

	t.Run("lock failure is internal", func(t *testing.T) {
		f := newFixture()
		f.locker.On("LockSlot", ctx, testSlot).Return(errors.New("conn closed"))

		_, err := f.svc.Join(ctx, &models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart})

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestService_Join_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.JoinRequest
	}{
		{name: "zero user", req: models.JoinRequest{CourtID: 1, StartTime: slotStart}},
		{name: "zero court", req: models.JoinRequest{UserID: 7, StartTime: slotStart}},
		{name: "missing start", req: models.JoinRequest{UserID: 7, CourtID: 1}},
		{name: "not aligned", req: models.JoinRequest{UserID: 7, CourtID: 1, StartTime: slotStart.Add(15 * time.Minute)}},
		{name: "in the past", req: models.JoinRequest{UserID: 7, CourtID: 1, StartTime: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Join(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			f.locker.AssertNotCalled(t, "LockSlot", mock.Anything, mock.Anything)
		})
	}
}

func TestService_GetUserEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		notifiedAt := time.Date(2025, 10, 16, 8, 0, 0, 0, time.UTC)
		f.entries.On("GetByUserID", ctx, int64(7)).Return([]*domain.WaitlistEntry{
			{ID: 2, UserID: 7, CourtID: 1, StartTime: slotStart, Status: domain.WaitlistNotified, NotifiedAt: &notifiedAt},
			{ID: 1, UserID: 7, CourtID: 2, StartTime: slotStart, Status: domain.WaitlistWaiting},
		}, nil)

		resp, err := f.svc.GetUserEntries(ctx, 7)

		require.NoError(t, err)
		require.Len(t, resp.Entries, 2)
		require.NotNil(t, resp.Entries[0].NotifiedAt)
		assert.Equal(t, "2025-10-16T08:00:00Z", *resp.Entries[0].NotifiedAt)
		assert.Equal(t, "waiting", resp.Entries[1].Status)
	})

	t.Run("invalid user", func(t *testing.T) {
		f := newFixture()

		_, err := f.svc.GetUserEntries(ctx, 0)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture()
		f.entries.On("GetByUserID", ctx, int64(7)).Return(nil, errors.New("boom"))

		_, err := f.svc.GetUserEntries(ctx, 7)

		assert.ErrorIs(t, err, ErrInternal)
	})
}
