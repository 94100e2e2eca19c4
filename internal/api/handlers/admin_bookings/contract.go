package admin_bookings

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

type BookingService interface {
	ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	GetStats(ctx context.Context) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
