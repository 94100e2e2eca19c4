package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/bookings"
)

const (
	msgInvalidCourtID   = "некорректный ID корта"
	msgMissingStartTime = "время начала обязательно"
	msgInvalidStartTime = "некорректное время начала, ожидается RFC3339 с началом часа"
	msgCourtNotFound    = "корт не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/availability
// Query params: startTime (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /courts/{id}/availability - Missing start time: court_id=%d", courtID)
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	startTime, err := time.Parse(domain.TimeFormat, startTimeStr)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/availability - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), courtID, startTime)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/availability - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartTime)

		default:
			h.logger.Error("GET /courts/{id}/availability - Failed to check availability: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/availability - Checked: court_id=%d, start=%s, available=%t",
		courtID, startTimeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, result)
}
