package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings/models"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, courtID int64, startTime time.Time) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
