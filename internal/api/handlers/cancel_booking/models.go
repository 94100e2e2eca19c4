package cancel_booking

import (
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID               int64  `json:"id"`
	Status           string `json:"status"`
	CancelledAt      string `json:"cancelledAt"`
	WaitlistPromoted bool   `json:"waitlistPromoted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель.
// Кто именно продвинут в очереди, отменяющему не сообщается.
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:               resp.BookingID,
		Status:           resp.Status,
		CancelledAt:      resp.CancelledAt.UTC().Format(domain.TimeFormat),
		WaitlistPromoted: resp.PromotedEntryID != nil,
	}
}
