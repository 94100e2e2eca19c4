package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/pricing"
	"github.com/m04kA/SMC-CourtBookingService/pkg/ptr"
)

// Request модели

// CourtRequest данные корта для создания и обновления
type CourtRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	BasePrice float64 `json:"basePrice"`
	IsActive  *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// CoachRequest данные тренера для создания и обновления
type CoachRequest struct {
	Name           string  `json:"name"`
	HourlyRate     float64 `json:"hourlyRate"`
	IsAvailable    *bool   `json:"isAvailable,omitempty"` // по умолчанию true
	Specialization string  `json:"specialization,omitempty"`
}

// EquipmentRequest данные инвентаря для создания и обновления
type EquipmentRequest struct {
	Name        string  `json:"name"`
	HourlyRate  float64 `json:"hourlyRate"`
	TotalStock  int     `json:"totalStock"`
	IsAvailable *bool   `json:"isAvailable,omitempty"` // по умолчанию true
}

// PricingRuleRequest данные правила ценообразования для создания и обновления
type PricingRuleRequest struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	Multiplier  float64 `json:"multiplier"`
	IsActive    *bool   `json:"isActive,omitempty"` // по умолчанию true
	Description string  `json:"description,omitempty"`
}

// QuoteEquipmentLine строка инвентаря для расчёта цены
type QuoteEquipmentLine struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// QuoteRequest запрос предварительного расчёта цены
type QuoteRequest struct {
	CourtID   int64                `json:"courtId"`
	CoachID   *int64               `json:"coachId,omitempty"`
	Equipment []QuoteEquipmentLine `json:"equipment,omitempty"`
	StartTime time.Time            `json:"startTime"`
}

// ToDomain конвертирует request в domain модель
func (r *CourtRequest) ToDomain() *domain.Court {
	return &domain.Court{
		Name:      r.Name,
		Category:  domain.CourtCategory(r.Category),
		BasePrice: r.BasePrice,
		IsActive:  ptr.Deref(r.IsActive, true),
	}
}

// ToDomain конвертирует request в domain модель
func (r *CoachRequest) ToDomain() *domain.Coach {
	return &domain.Coach{
		Name:           r.Name,
		HourlyRate:     r.HourlyRate,
		IsAvailable:    ptr.Deref(r.IsAvailable, true),
		Specialization: r.Specialization,
	}
}

// ToDomain конвертирует request в domain модель
func (r *EquipmentRequest) ToDomain() *domain.EquipmentItem {
	return &domain.EquipmentItem{
		Name:        r.Name,
		HourlyRate:  r.HourlyRate,
		TotalStock:  r.TotalStock,
		IsAvailable: ptr.Deref(r.IsAvailable, true),
	}
}

// ToDomain конвертирует request в domain модель
func (r *PricingRuleRequest) ToDomain() *domain.PricingRule {
	return &domain.PricingRule{
		Name:        r.Name,
		Kind:        domain.PricingRuleKind(r.Kind),
		Multiplier:  r.Multiplier,
		IsActive:    ptr.Deref(r.IsActive, true),
		Description: r.Description,
	}
}

// Response модели

// CourtResponse корт
type CourtResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	BasePrice float64   `json:"basePrice"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// CoachResponse тренер
type CoachResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	HourlyRate     float64   `json:"hourlyRate"`
	IsAvailable    bool      `json:"isAvailable"`
	Specialization string    `json:"specialization,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// EquipmentResponse инвентарь
type EquipmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HourlyRate  float64   `json:"hourlyRate"`
	TotalStock  int       `json:"totalStock"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PricingRuleResponse правило ценообразования
type PricingRuleResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Multiplier  float64   `json:"multiplier"`
	IsActive    bool      `json:"isActive"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ActiveResourcesResponse ресурсы, доступные для бронирования
type ActiveResourcesResponse struct {
	Courts    []CourtResponse     `json:"courts"`
	Coaches   []CoachResponse     `json:"coaches"`
	Equipment []EquipmentResponse `json:"equipment"`
}

// CourtListResponse список кортов
type CourtListResponse struct {
	Courts []CourtResponse `json:"courts"`
}

// CoachListResponse список тренеров
type CoachListResponse struct {
	Coaches []CoachResponse `json:"coaches"`
}

// EquipmentListResponse список инвентаря
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// PricingRuleListResponse список правил
type PricingRuleListResponse struct {
	Rules []PricingRuleResponse `json:"rules"`
}

// AppliedRuleResponse сработавшее правило
type AppliedRuleResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Multiplier float64 `json:"multiplier"`
}

// QuoteResponse предварительный расчёт цены
type QuoteResponse struct {
	CourtID            int64                 `json:"courtId"`
	StartTime          time.Time             `json:"startTime"`
	BasePrice          float64               `json:"basePrice"`
	CourtPrice         float64               `json:"courtPrice"`
	CoachSurcharge     float64               `json:"coachSurcharge"`
	EquipmentSurcharge float64               `json:"equipmentSurcharge"`
	TotalPrice         float64               `json:"totalPrice"`
	AppliedRules       []AppliedRuleResponse `json:"appliedRules"`
}

// Методы конвертации

// FromDomainCourt конвертирует domain модель в DTO
func FromDomainCourt(c *domain.Court) *CourtResponse {
	return &CourtResponse{
		ID:        c.ID,
		Name:      c.Name,
		Category:  string(c.Category),
		BasePrice: domain.RoundMoney(c.BasePrice),
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

// FromDomainCoach конвертирует domain модель в DTO
func FromDomainCoach(c *domain.Coach) *CoachResponse {
	return &CoachResponse{
		ID:             c.ID,
		Name:           c.Name,
		HourlyRate:     domain.RoundMoney(c.HourlyRate),
		IsAvailable:    c.IsAvailable,
		Specialization: c.Specialization,
		CreatedAt:      c.CreatedAt,
	}
}

// FromDomainEquipment конвертирует domain модель в DTO
func FromDomainEquipment(e *domain.EquipmentItem) *EquipmentResponse {
	return &EquipmentResponse{
		ID:          e.ID,
		Name:        e.Name,
		HourlyRate:  domain.RoundMoney(e.HourlyRate),
		TotalStock:  e.TotalStock,
		IsAvailable: e.IsAvailable,
		CreatedAt:   e.CreatedAt,
	}
}

// FromDomainPricingRule конвертирует domain модель в DTO
func FromDomainPricingRule(r *domain.PricingRule) *PricingRuleResponse {
	return &PricingRuleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Kind:        string(r.Kind),
		Multiplier:  r.Multiplier,
		IsActive:    r.IsActive,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// FromDomainCourtList конвертирует список кортов
func FromDomainCourtList(courts []*domain.Court) []CourtResponse {
	resp := make([]CourtResponse, 0, len(courts))
	for _, c := range courts {
		resp = append(resp, *FromDomainCourt(c))
	}
	return resp
}

// FromDomainCoachList конвертирует список тренеров
func FromDomainCoachList(coaches []*domain.Coach) []CoachResponse {
	resp := make([]CoachResponse, 0, len(coaches))
	for _, c := range coaches {
		resp = append(resp, *FromDomainCoach(c))
	}
	return resp
}

// FromDomainEquipmentList конвертирует список инвентаря
func FromDomainEquipmentList(items []*domain.EquipmentItem) []EquipmentResponse {
	resp := make([]EquipmentResponse, 0, len(items))
	for _, e := range items {
		resp = append(resp, *FromDomainEquipment(e))
	}
	return resp
}

// FromDomainPricingRuleList конвертирует список правил
func FromDomainPricingRuleList(rules []*domain.PricingRule) []PricingRuleResponse {
	resp := make([]PricingRuleResponse, 0, len(rules))
	for _, r := range rules {
		resp = append(resp, *FromDomainPricingRule(r))
	}
	return resp
}

// FromQuote конвертирует результат расчёта в DTO. Округление только здесь.
func FromQuote(courtID int64, startTime time.Time, q pricing.Quote) *QuoteResponse {
	resp := &QuoteResponse{
		CourtID:            courtID,
		StartTime:          startTime,
		BasePrice:          domain.RoundMoney(q.BasePrice),
		CourtPrice:         domain.RoundMoney(q.CourtPrice),
		CoachSurcharge:     domain.RoundMoney(q.CoachSurcharge),
		EquipmentSurcharge: domain.RoundMoney(q.EquipmentSurcharge),
		TotalPrice:         domain.RoundMoney(q.Total),
		AppliedRules:       make([]AppliedRuleResponse, 0, len(q.Applied)),
	}

	for _, rule := range q.Applied {
		resp.AppliedRules = append(resp.AppliedRules, AppliedRuleResponse{
			ID:         rule.RuleID,
			Name:       rule.Name,
			Kind:       string(rule.Kind),
			Multiplier: rule.Multiplier,
		})
	}

	return resp
}
