package waitlist

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// WaitlistRepository интерфейс репозитория очереди ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, userID int64, slot domain.Slot) (*domain.WaitlistEntry, error)
	ExistsWaiting(ctx context.Context, userID int64, slot domain.Slot) (bool, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.WaitlistEntry, error)
}

// SlotLocker блокирует слот на время транзакции
type SlotLocker interface {
	LockSlot(ctx context.Context, slot domain.Slot) error
}

// CourtRepository интерфейс для проверки корта
type CourtRepository interface {
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик очереди
type Metrics interface {
	RecordWaitlistJoin()
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
