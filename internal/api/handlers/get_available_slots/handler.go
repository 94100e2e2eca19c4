package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CourtBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректная дата, ожидается YYYY-MM-DD"
	msgPastDate       = "дата уже прошла"
	msgTooFarDate     = "дата слишком далеко в будущем"
	msgCourtNotFound  = "корт не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathInt64(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /courts/{id}/slots - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /courts/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CourtID: courtID,
		Date:    date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /courts/{id}/slots - Past date: court_id=%d, date=%s", courtID, date.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /courts/{id}/slots - Date too far: court_id=%d, date=%s", courtID, date.Format(domain.DateFormat))
			handlers.RespondBadRequest(w, msgTooFarDate)

		case errors.Is(err, getAvailableSlots.ErrCourtNotFound):
			h.logger.Warn("GET /courts/{id}/slots - Court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		default:
			h.logger.Error("GET /courts/{id}/slots - Failed to get slots: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /courts/{id}/slots - Success: court_id=%d, date=%s, slots=%d",
		courtID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
