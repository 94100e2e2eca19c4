package create_booking

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time, loc *time.Location) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}

	if req.CoachID != nil && *req.CoachID <= 0 {
		return fmt.Errorf("%w: coachId must be positive", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.UserName) > domain.MaxDisplayNameLength {
		return fmt.Errorf("%w: userName must be at most %d characters", ErrInvalidInput, domain.MaxDisplayNameLength)
	}

	if len(req.Equipment) > domain.MaxEquipmentLines {
		return fmt.Errorf("%w: at most %d equipment lines allowed", ErrInvalidInput, domain.MaxEquipmentLines)
	}

	for i, line := range req.Equipment {
		if line.ItemID <= 0 {
			return fmt.Errorf("%w: equipment[%d].itemId must be positive", ErrInvalidInput, i)
		}
		if line.Quantity < 1 || line.Quantity > domain.MaxEquipmentQuantity {
			return fmt.Errorf("%w: equipment[%d].quantity must be between 1 and %d", ErrInvalidInput, i, domain.MaxEquipmentQuantity)
		}
	}

	return validateStartTime(req.StartTime, now, loc)
}

// validateStartTime проверяет начало слота: задано, кратно часу в часовом поясе площадки и не в прошлом
func validateStartTime(startTime, now time.Time, loc *time.Location) error {
	if startTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	slot := domain.Slot{StartTime: startTime.In(loc)}
	if !slot.IsAligned() {
		return fmt.Errorf("%w: startTime must be aligned to a whole hour", ErrInvalidInput)
	}

	if startTime.Before(now) {
		return fmt.Errorf("%w: startTime is in the past", ErrInvalidInput)
	}

	return nil
}
