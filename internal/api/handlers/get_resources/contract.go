package get_resources

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	GetActiveResources(ctx context.Context) (*models.ActiveResourcesResponse, error)
	GetActivePricingRules(ctx context.Context) (*models.PricingRuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
