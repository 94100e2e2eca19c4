package manage_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// ListCourts GET /api/v1/admin/courts
func (h *Handler) ListCourts(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/courts"

	result, err := h.service.ListCourts(r.Context())
	if err != nil {
		h.respondError(w, route, err, msgCourtNotFound)
		return
	}

	h.logger.Info("%s - Retrieved: count=%d", route, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, result.Courts)
}

// CreateCourt POST /api/v1/admin/courts
func (h *Handler) CreateCourt(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/courts"

	var req models.CourtRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.CreateCourt(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err, msgCourtNotFound)
		return
	}

	h.logger.Info("%s - Created: id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateCourt PUT /api/v1/admin/courts/{id}
func (h *Handler) UpdateCourt(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/courts/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	var req models.CourtRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateCourt(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, err, msgCourtNotFound)
		return
	}

	h.logger.Info("%s - Updated: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteCourt DELETE /api/v1/admin/courts/{id}
// Корт с бронированиями не удаляется (409), его можно деактивировать через PUT
func (h *Handler) DeleteCourt(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/courts/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.DeleteCourt(r.Context(), id); err != nil {
		h.respondError(w, route, err, msgCourtNotFound)
		return
	}

	h.logger.Info("%s - Deleted: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
