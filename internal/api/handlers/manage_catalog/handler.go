package manage_catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgCourtNotFound      = "корт не найден"
	msgCoachNotFound      = "тренер не найден"
	msgEquipmentNotFound  = "инвентарь не найден"
	msgRuleNotFound       = "правило ценообразования не найдено"
	msgResourceInUse      = "ресурс используется в бронированиях и не может быть удален"
)

// Handler административное управление каталогом: корты, тренеры, инвентарь, правила цен
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

// pathID извлекает {id} из URL, при ошибке сам пишет ответ
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

// decode читает тело запроса, при ошибке сам пишет ответ
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, v interface{}) bool {
	if err := handlers.DecodeJSON(r, v); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

// respondError переводит ошибку сервиса каталога в HTTP ответ
func (h *Handler) respondError(w http.ResponseWriter, route string, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": "))

	case errors.Is(err, catalog.ErrCourtNotFound),
		errors.Is(err, catalog.ErrCoachNotFound),
		errors.Is(err, catalog.ErrEquipmentNotFound),
		errors.Is(err, catalog.ErrPricingRuleNotFound):
		h.logger.Warn("%s - Not found: %v", route, err)
		handlers.RespondNotFound(w, notFoundMsg)

	case errors.Is(err, catalog.ErrResourceInUse):
		h.logger.Warn("%s - Resource in use: %v", route, err)
		handlers.RespondConflict(w, msgResourceInUse)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
