package get_user_waitlist

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/users/me/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetUserEntries(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/waitlist - Failed to get entries: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/waitlist - Entries retrieved: user_id=%d, count=%d", userID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result.Entries)
}
