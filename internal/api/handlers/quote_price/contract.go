package quote_price

import (
	"context"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
