package bookings

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// BookingRepository интерфейс журнала бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ExistsConfirmed(ctx context.Context, slot domain.Slot) (bool, error)
	ConfirmedTotals(ctx context.Context) (int64, float64, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
	CountActiveCourts(ctx context.Context) (int64, error)
	CountAvailableCoaches(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
