package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	LockSlot(ctx context.Context, slot domain.Slot) error
	ExistsConfirmed(ctx context.Context, slot domain.Slot) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
	GetCoachByID(ctx context.Context, id int64) (*domain.Coach, error)
	GetEquipmentByID(ctx context.Context, id int64) (*domain.EquipmentItem, error)
	ListPricingRules(ctx context.Context, activeOnly bool) ([]*domain.PricingRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик бронирований
type Metrics interface {
	RecordBookingAttempt(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
