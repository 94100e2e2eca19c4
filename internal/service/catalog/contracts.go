package catalog

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CreateCourt(ctx context.Context, court *domain.Court) (*domain.Court, error)
	GetCourtByID(ctx context.Context, id int64) (*domain.Court, error)
	ListCourts(ctx context.Context, activeOnly bool) ([]*domain.Court, error)
	UpdateCourt(ctx context.Context, id int64, court *domain.Court) (*domain.Court, error)
	DeleteCourt(ctx context.Context, id int64) error

	CreateCoach(ctx context.Context, coach *domain.Coach) (*domain.Coach, error)
	GetCoachByID(ctx context.Context, id int64) (*domain.Coach, error)
	ListCoaches(ctx context.Context, availableOnly bool) ([]*domain.Coach, error)
	UpdateCoach(ctx context.Context, id int64, coach *domain.Coach) (*domain.Coach, error)
	DeleteCoach(ctx context.Context, id int64) error

	CreateEquipment(ctx context.Context, item *domain.EquipmentItem) (*domain.EquipmentItem, error)
	GetEquipmentByID(ctx context.Context, id int64) (*domain.EquipmentItem, error)
	ListEquipment(ctx context.Context, availableOnly bool) ([]*domain.EquipmentItem, error)
	UpdateEquipment(ctx context.Context, id int64, item *domain.EquipmentItem) (*domain.EquipmentItem, error)
	DeleteEquipment(ctx context.Context, id int64) error

	CreatePricingRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	ListPricingRules(ctx context.Context, activeOnly bool) ([]*domain.PricingRule, error)
	UpdatePricingRule(ctx context.Context, id int64, rule *domain.PricingRule) (*domain.PricingRule, error)
	DeletePricingRule(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
