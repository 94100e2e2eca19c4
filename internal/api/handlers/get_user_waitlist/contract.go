package get_user_waitlist

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetUserEntries(ctx context.Context, userID int64) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
