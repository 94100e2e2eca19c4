package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createBooking.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func doRequest(h *Handler, body string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, false))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	start := time.Date(2025, 10, 18, 19, 0, 0, 0, time.UTC)
	body := `{"userName":"Alex","courtId":1,"coachId":2,"equipment":[{"itemId":5,"quantity":1}],"startTime":"2025-10-18T19:00:00Z"}`

	t.Run("created", func(t *testing.T) {
		uc := &useCaseMock{}
		uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
			return r.UserID == 7 && r.CourtID == 1 && *r.CoachID == 2 &&
				len(r.Equipment) == 1 && r.Equipment[0].Quantity == 1 && r.StartTime.Equal(start)
		})).Return(&createBooking.Response{
			ID:            10,
			UserID:        7,
			CourtID:       1,
			CourtName:     "Court 1",
			CourtCategory: "indoor",
			StartTime:     start,
			EndTime:       start.Add(time.Hour),
			TotalPrice:    85.80000000000001,
			Status:        "confirmed",
			Equipment:     []domain.BookingEquipment{{ItemID: 5, Quantity: 1, ItemName: "Racket", ItemRate: 5}},
		}, nil)

		rec := doRequest(NewHandler(uc, logger.Discard()), body, 7)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp BookingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(10), resp.ID)
		assert.Equal(t, 85.8, resp.TotalPrice)
		assert.Equal(t, "2025-10-18T20:00:00Z", resp.EndTime)
		require.Len(t, resp.Equipment, 1)
		assert.Equal(t, "Racket", resp.Equipment[0].ItemName)
	})

	t.Run("slot conflict offers waitlist", func(t *testing.T) {
		uc := &useCaseMock{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createBooking.ErrSlotConflict)

		rec := doRequest(NewHandler(uc, logger.Discard()), body, 7)

		require.Equal(t, http.StatusConflict, rec.Code)
		var resp SlotConflictResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.True(t, resp.CanJoinWaitlist)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: startTime is in the past", createBooking.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "unavailable", err: createBooking.ErrResourceUnavailable, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doRequest(NewHandler(uc, logger.Discard()), body, 7)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("validation message has no package prefix", func(t *testing.T) {
		uc := &useCaseMock{}
		uc.On("Execute", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: startTime is in the past", createBooking.ErrInvalidInput))

		rec := doRequest(NewHandler(uc, logger.Discard()), body, 7)

		assert.Contains(t, rec.Body.String(), `"message":"startTime is in the past"`)
	})

	t.Run("bad start time format", func(t *testing.T) {
		uc := &useCaseMock{}

		rec := doRequest(NewHandler(uc, logger.Discard()), `{"courtId":1,"startTime":"18.10.2025 19:00"}`, 7)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		uc := &useCaseMock{}

		rec := doRequest(NewHandler(uc, logger.Discard()), `{"courtId":1,"startTime":"2025-10-18T19:00:00Z","price":1}`, 7)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no user in context", func(t *testing.T) {
		uc := &useCaseMock{}

		rec := doRequest(NewHandler(uc, logger.Discard()), body, 0)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
