package domain

import "time"

// PricingRuleKind represents the condition under which a rule applies
type PricingRuleKind string

const (
	RulePeak          PricingRuleKind = "peak"
	RuleWeekend       PricingRuleKind = "weekend"
	RuleIndoorPremium PricingRuleKind = "indoor_premium"
	RuleCustom        PricingRuleKind = "custom"
)

// IsValid returns true for a known rule kind
func (k PricingRuleKind) IsValid() bool {
	switch k {
	case RulePeak, RuleWeekend, RuleIndoorPremium, RuleCustom:
		return true
	default:
		return false
	}
}

// PricingRule is an independently toggleable multiplicative surcharge
type PricingRule struct {
	ID          int64
	Name        string
	Kind        PricingRuleKind
	Multiplier  float64
	IsActive    bool
	Description string
	CreatedAt   time.Time
}
