package manage_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// ListCoaches GET /api/v1/admin/coaches
func (h *Handler) ListCoaches(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/coaches"

	result, err := h.service.ListCoaches(r.Context())
	if err != nil {
		h.respondError(w, route, err, msgCoachNotFound)
		return
	}

	h.logger.Info("%s - Retrieved: count=%d", route, len(result.Coaches))
	handlers.RespondJSON(w, http.StatusOK, result.Coaches)
}

// CreateCoach POST /api/v1/admin/coaches
func (h *Handler) CreateCoach(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/coaches"

	var req models.CoachRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.CreateCoach(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err, msgCoachNotFound)
		return
	}

	h.logger.Info("%s - Created: id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateCoach PUT /api/v1/admin/coaches/{id}
func (h *Handler) UpdateCoach(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/coaches/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	var req models.CoachRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateCoach(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, err, msgCoachNotFound)
		return
	}

	h.logger.Info("%s - Updated: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteCoach DELETE /api/v1/admin/coaches/{id}
func (h *Handler) DeleteCoach(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/coaches/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.DeleteCoach(r.Context(), id); err != nil {
		h.respondError(w, route, err, msgCoachNotFound)
		return
	}

	h.logger.Info("%s - Deleted: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
