package manage_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// ListPricingRules GET /api/v1/admin/pricing-rules
func (h *Handler) ListPricingRules(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/pricing-rules"

	result, err := h.service.ListPricingRules(r.Context())
	if err != nil {
		h.respondError(w, route, err, msgRuleNotFound)
		return
	}

	h.logger.Info("%s - Retrieved: count=%d", route, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result.Rules)
}

// CreatePricingRule POST /api/v1/admin/pricing-rules
func (h *Handler) CreatePricingRule(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/pricing-rules"

	var req models.PricingRuleRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.CreatePricingRule(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err, msgRuleNotFound)
		return
	}

	h.logger.Info("%s - Created: id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdatePricingRule PUT /api/v1/admin/pricing-rules/{id}
func (h *Handler) UpdatePricingRule(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/pricing-rules/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	var req models.PricingRuleRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdatePricingRule(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, err, msgRuleNotFound)
		return
	}

	h.logger.Info("%s - Updated: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeletePricingRule DELETE /api/v1/admin/pricing-rules/{id}
func (h *Handler) DeletePricingRule(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/pricing-rules/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.DeletePricingRule(r.Context(), id); err != nil {
		h.respondError(w, route, err, msgRuleNotFound)
		return
	}

	h.logger.Info("%s - Deleted: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
