package create_booking

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

type bookingRepoMock struct {
	mock.Mock
}

func (m *bookingRepoMock) LockSlot(ctx context.Context, slot domain.Slot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *bookingRepoMock) ExistsConfirmed(ctx context.Context, slot domain.Slot) (bool, error) {
	args := m.Called(ctx, slot)
	return args.Bool(0), args.Error(1)
}

// Create возвращает переданное бронирование с ID из Return(id, err)
func (m *bookingRepoMock) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	booking.ID = args.Get(0).(int64)
	return booking, nil
}

type catalogRepoMock struct {
	mock.Mock
}

func (m *catalogRepoMock) GetCourtByID(ctx context.Context, id int64) (*domain.Court, error) {
	args := m.Called(ctx, id)
	if court := args.Get(0); court != nil {
		return court.(*domain.Court), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *catalogRepoMock) GetCoachByID(ctx context.Context, id int64) (*domain.Coach, error) {
	args := m.Called(ctx, id)
	if coach := args.Get(0); coach != nil {
		return coach.(*domain.Coach), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *catalogRepoMock) GetEquipmentByID(ctx context.Context, id int64) (*domain.EquipmentItem, error) {
	args := m.Called(ctx, id)
	if item := args.Get(0); item != nil {
		return item.(*domain.EquipmentItem), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *catalogRepoMock) ListPricingRules(ctx context.Context, activeOnly bool) ([]*domain.PricingRule, error) {
	args := m.Called(ctx, activeOnly)
	if rules := args.Get(0); rules != nil {
		return rules.([]*domain.PricingRule), args.Error(1)
	}
	return nil, args.Error(1)
}

// txManagerStub выполняет fn без транзакции
type txManagerStub struct{}

func (txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type metricsStub struct {
	mu      sync.Mutex
	results []string
}

func (m *metricsStub) RecordBookingAttempt(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func (m *metricsStub) count(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.results {
		if r == result {
			n++
		}
	}
	return n
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}
