package manage_catalog

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListCourts(ctx context.Context) (*models.CourtListResponse, error)
	CreateCourt(ctx context.Context, req *models.CourtRequest) (*models.CourtResponse, error)
	UpdateCourt(ctx context.Context, id int64, req *models.CourtRequest) (*models.CourtResponse, error)
	DeleteCourt(ctx context.Context, id int64) error

	ListCoaches(ctx context.Context) (*models.CoachListResponse, error)
	CreateCoach(ctx context.Context, req *models.CoachRequest) (*models.CoachResponse, error)
	UpdateCoach(ctx context.Context, id int64, req *models.CoachRequest) (*models.CoachResponse, error)
	DeleteCoach(ctx context.Context, id int64) error

	ListEquipment(ctx context.Context) (*models.EquipmentListResponse, error)
	CreateEquipment(ctx context.Context, req *models.EquipmentRequest) (*models.EquipmentResponse, error)
	UpdateEquipment(ctx context.Context, id int64, req *models.EquipmentRequest) (*models.EquipmentResponse, error)
	DeleteEquipment(ctx context.Context, id int64) error

	ListPricingRules(ctx context.Context) (*models.PricingRuleListResponse, error)
	CreatePricingRule(ctx context.Context, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error)
	UpdatePricingRule(ctx context.Context, id int64, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error)
	DeletePricingRule(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
