package join_waitlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgInvalidData        = "некорректные данные: слот должен начинаться в начале часа и быть в будущем"
	msgCourtNotFound      = "корт не найден"
	msgAlreadyWaiting     = "вы уже стоите в очереди на этот слот"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("POST /waitlist - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	entry, err := h.service.Join(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, waitlist.ErrCourtNotFound):
			h.logger.Warn("POST /waitlist - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, waitlist.ErrDuplicateWaitlistEntry):
			h.logger.Warn("POST /waitlist - Already waiting: user_id=%d, court_id=%d, start=%s",
				userID, req.CourtID, req.StartTime)
			handlers.RespondConflict(w, msgAlreadyWaiting)

		default:
			h.logger.Error("POST /waitlist - Failed to join waitlist: user_id=%d, court_id=%d, error=%v",
				userID, req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist - Joined waitlist: entry_id=%d, user_id=%d, court_id=%d",
		entry.ID, userID, entry.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, entry)
}
