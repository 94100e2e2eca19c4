package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func validateRate(field string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}
	return nil
}

func validateCourt(c *domain.Court) error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: category must be indoor or outdoor", ErrInvalidInput)
	}
	return validateRate("basePrice", c.BasePrice)
}

func validateCoach(c *domain.Coach) error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.Specialization) > domain.MaxNameLength {
		return fmt.Errorf("%w: specialization must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return validateRate("hourlyRate", c.HourlyRate)
}

func validateEquipment(e *domain.EquipmentItem) error {
	if err := validateName(e.Name); err != nil {
		return err
	}
	if e.TotalStock < 0 {
		return fmt.Errorf("%w: totalStock must not be negative", ErrInvalidInput)
	}
	return validateRate("hourlyRate", e.HourlyRate)
}

func validatePricingRule(r *domain.PricingRule) error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: kind must be one of peak, weekend, indoor_premium, custom", ErrInvalidInput)
	}
	if r.Multiplier <= 0 {
		return fmt.Errorf("%w: multiplier must be positive", ErrInvalidInput)
	}
	if utf8.RuneCountInString(r.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must be at most %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	return nil
}

func validateQuote(req *models.QuoteRequest) error {
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if req.CoachID != nil && *req.CoachID <= 0 {
		return fmt.Errorf("%w: coachId must be positive", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
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
	return nil
}
