// Package pricing считает стоимость бронирования по базовой цене корта,
// мультипликативным правилам и фиксированным доплатам за тренера и инвентарь.
// Пакет не имеет состояния и не выполняет I/O.
package pricing

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// AppliedRule правило, сработавшее для бронирования
type AppliedRule struct {
	RuleID     int64
	Name       string
	Kind       domain.PricingRuleKind
	Multiplier float64
}

// Quote детализация расчёта
type Quote struct {
	BasePrice          float64
	CourtPrice         float64 // базовая цена после всех множителей
	CoachSurcharge     float64
	EquipmentSurcharge float64
	Total              float64
	Applied            []AppliedRule
}

// Calculate возвращает итоговую стоимость.
// Множители сработавших правил перемножаются с накоплением, затем прибавляются доплаты.
// Час и день недели берутся в локации startTime. Округления нет.
func Calculate(
	basePrice float64,
	startTime time.Time,
	category domain.CourtCategory,
	rules []*domain.PricingRule,
	coachSurcharge float64,
	equipmentSurcharge float64,
) float64 {
	return Breakdown(basePrice, startTime, category, rules, coachSurcharge, equipmentSurcharge).Total
}

// Breakdown считает стоимость и возвращает список сработавших правил
func Breakdown(
	basePrice float64,
	startTime time.Time,
	category domain.CourtCategory,
	rules []*domain.PricingRule,
	coachSurcharge float64,
	equipmentSurcharge float64,
) Quote {
	quote := Quote{
		BasePrice:          basePrice,
		CoachSurcharge:     coachSurcharge,
		EquipmentSurcharge: equipmentSurcharge,
		Applied:            make([]AppliedRule, 0, len(rules)),
	}

	total := basePrice
	for _, rule := range rules {
		if !Applies(rule, startTime, category) {
			continue
		}
		total *= rule.Multiplier
		quote.Applied = append(quote.Applied, AppliedRule{
			RuleID:     rule.ID,
			Name:       rule.Name,
			Kind:       rule.Kind,
			Multiplier: rule.Multiplier,
		})
	}

	quote.CourtPrice = total
	quote.Total = total + coachSurcharge + equipmentSurcharge
	return quote
}

// Applies проверяет условие правила. Неактивные правила не срабатывают никогда,
// custom не имеет неявного условия.
func Applies(rule *domain.PricingRule, startTime time.Time, category domain.CourtCategory) bool {
	if rule == nil || !rule.IsActive {
		return false
	}

	switch rule.Kind {
	case domain.RulePeak:
		hour := startTime.Hour()
		return hour >= domain.PeakStartHour && hour < domain.PeakEndHour
	case domain.RuleWeekend:
		day := startTime.Weekday()
		return day == time.Saturday || day == time.Sunday
	case domain.RuleIndoorPremium:
		return category == domain.CourtIndoor
	default:
		return false
	}
}
