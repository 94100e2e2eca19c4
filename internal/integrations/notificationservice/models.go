package notificationservice

import "time"

// WaitlistPromotionRequest уведомление о продвижении в очереди ожидания
type WaitlistPromotionRequest struct {
	UserID             int64     `json:"user_id"`
	WaitlistEntryID    int64     `json:"waitlist_entry_id"`
	CourtID            int64     `json:"court_id"`
	CourtName          string    `json:"court_name"`
	StartTime          time.Time `json:"start_time"`
	CancelledBookingID int64     `json:"cancelled_booking_id"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
