package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidData        = "некорректные параметры расчёта"
	msgUnavailable        = "корт, тренер или инвентарь недоступны"
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

// Handle POST /api/v1/bookings/quote
// Предварительный расчёт цены, бронирование не создаётся
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/quote - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.service.Quote(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /bookings/quote - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, catalog.ErrResourceUnavailable):
			h.logger.Warn("POST /bookings/quote - Resource unavailable: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondUnprocessable(w, msgUnavailable)

		default:
			h.logger.Error("POST /bookings/quote - Failed to quote: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/quote - Quote calculated: court_id=%d, total=%.2f", req.CourtID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, result)
}
