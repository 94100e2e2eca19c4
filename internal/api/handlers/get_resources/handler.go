package get_resources

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Resources GET /api/v1/resources
// Публичный endpoint - активные корты, доступные тренеры и инвентарь
func (h *Handler) Resources(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetActiveResources(r.Context())
	if err != nil {
		h.logger.Error("GET /resources - Failed to get resources: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /resources - Resources retrieved: courts=%d, coaches=%d, equipment=%d",
		len(result.Courts), len(result.Coaches), len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// PricingRules GET /api/v1/pricing-rules
// Публичный endpoint - активные правила ценообразования
func (h *Handler) PricingRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetActivePricingRules(r.Context())
	if err != nil {
		h.logger.Error("GET /pricing-rules - Failed to get pricing rules: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pricing-rules - Rules retrieved: count=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result.Rules)
}
