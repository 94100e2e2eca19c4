package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/pricing"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше advanceBookingDays (0 - без ограничения).
// day и now должны быть в одной локации.
func validateDate(day, now time.Time, advanceBookingDays int) error {
	today := startOfDay(now)
	if day.Before(today) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	if day.After(today.AddDate(0, 0, advanceBookingDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// generateSlotStarts возвращает начала часовых слотов дня в часах работы.
// Уже начавшиеся слоты отбрасываются.
func generateSlotStarts(day time.Time, hours Hours, now time.Time) []time.Time {
	starts := make([]time.Time, 0, hours.ClosingHour-hours.OpeningHour)

	for hour := hours.OpeningHour; hour < hours.ClosingHour; hour++ {
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
		// при переходе на летнее время час может не существовать
		if start.Hour() != hour {
			continue
		}
		if start.Before(now) {
			continue
		}
		starts = append(starts, start)
	}

	return starts
}

// buildSlots отмечает занятые слоты и считает цену корта для каждого
func buildSlots(starts []time.Time, court *domain.Court, rules []*domain.PricingRule, bookings []*domain.Booking) []Slot {
	taken := make(map[int64]struct{}, len(bookings))
	for _, booking := range bookings {
		if booking.Status != domain.StatusConfirmed {
			continue
		}
		taken[booking.StartTime.UTC().Unix()] = struct{}{}
	}

	slots := make([]Slot, 0, len(starts))
	for _, start := range starts {
		_, isTaken := taken[start.UTC().Unix()]
		slots = append(slots, Slot{
			StartTime: start,
			EndTime:   start.Add(domain.SlotDuration),
			Available: !isTaken,
			Price:     pricing.Calculate(court.BasePrice, start, court.Category, rules, 0, 0),
		})
	}

	return slots
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
