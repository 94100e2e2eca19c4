package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotConflict       = "выбранный слот уже забронирован, можно встать в очередь ожидания"
	msgUnavailable        = "корт, тренер или инвентарь недоступны"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, validationMessage(err))

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, court_id=%d, start=%s",
				userID, req.CourtID, req.StartTime)
			handlers.RespondJSON(w, http.StatusConflict, SlotConflictResponse{
				Code:            http.StatusConflict,
				Message:         msgSlotConflict,
				CanJoinWaitlist: true,
			})

		case errors.Is(err, createBooking.ErrResourceUnavailable):
			h.logger.Warn("POST /bookings - Resource unavailable: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondUnprocessable(w, msgUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, result.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// validationMessage отдаёт клиенту описание ошибки без префикса пакета
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), createBooking.ErrInvalidInput.Error()+": ")
}
