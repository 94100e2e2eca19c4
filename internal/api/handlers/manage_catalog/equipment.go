package manage_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
)

// ListEquipment GET /api/v1/admin/equipment
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/equipment"

	result, err := h.service.ListEquipment(r.Context())
	if err != nil {
		h.respondError(w, route, err, msgEquipmentNotFound)
		return
	}

	h.logger.Info("%s - Retrieved: count=%d", route, len(result.Equipment))
	handlers.RespondJSON(w, http.StatusOK, result.Equipment)
}

// CreateEquipment POST /api/v1/admin/equipment
func (h *Handler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/equipment"

	var req models.EquipmentRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.CreateEquipment(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err, msgEquipmentNotFound)
		return
	}

	h.logger.Info("%s - Created: id=%d", route, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateEquipment PUT /api/v1/admin/equipment/{id}
func (h *Handler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/equipment/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	var req models.EquipmentRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateEquipment(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, route, err, msgEquipmentNotFound)
		return
	}

	h.logger.Info("%s - Updated: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteEquipment DELETE /api/v1/admin/equipment/{id}
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/equipment/{id}"

	id, ok := h.pathID(w, r, route)
	if !ok {
		return
	}

	if err := h.service.DeleteEquipment(r.Context(), id); err != nil {
		h.respondError(w, route, err, msgEquipmentNotFound)
		return
	}

	h.logger.Info("%s - Deleted: id=%d", route, id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
