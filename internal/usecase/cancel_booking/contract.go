package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	LockSlot(ctx context.Context, slot domain.Slot) error
	Cancel(ctx context.Context, id int64) error
}

// WaitlistRepository интерфейс очереди ожидания
type WaitlistRepository interface {
	FindHeadWaiting(ctx context.Context, slot domain.Slot) (*domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int64) error
}

// Notifier уведомляет пользователя, продвинутого из очереди ожидания
type Notifier interface {
	NotifyWaitlistPromotion(ctx context.Context, promotion *domain.WaitlistPromotion) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик очереди ожидания
type Metrics interface {
	RecordWaitlistPromotion()
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
