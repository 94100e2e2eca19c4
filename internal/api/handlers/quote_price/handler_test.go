package quote_price

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.QuoteResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func doRequest(svc CatalogService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).Handle(rec, httptest.NewRequest(http.MethodPost, "/bookings/quote", strings.NewReader(body)))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	body := `{"courtId":1,"coachId":2,"equipment":[{"itemId":5,"quantity":2}],"startTime":"2025-10-18T19:00:00+05:30"}`

	t.Run("quote calculated", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("Quote", mock.Anything, mock.MatchedBy(func(r *models.QuoteRequest) bool {
			return r.CourtID == 1 && *r.CoachID == 2 && len(r.Equipment) == 1 && r.Equipment[0].Quantity == 2 &&
				r.StartTime.Equal(time.Date(2025, 10, 18, 13, 30, 0, 0, time.UTC))
		})).Return(&models.QuoteResponse{
			CourtID:    1,
			BasePrice:  20,
			CourtPrice: 46.8,
			TotalPrice: 86.8,
			AppliedRules: []models.AppliedRuleResponse{
				{ID: 1, Name: "Evening peak", Kind: "peak", Multiplier: 1.5},
			},
		}, nil)

		rec := doRequest(svc, body)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.QuoteResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 86.8, resp.TotalPrice)
		assert.Len(t, resp.AppliedRules, 1)
	})

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"courtId":1,"startTime":"2025-10-18T19:00:00Z","promo":"X"}`, wantStatus: http.StatusBadRequest},
		{name: "bad start time", body: `{"courtId":1,"startTime":"18.10.2025"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", body: body, serviceErr: catalog.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "resource unavailable", body: body, serviceErr: catalog.ErrResourceUnavailable, wantStatus: http.StatusUnprocessableEntity},
		{name: "internal", body: body, serviceErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.serviceErr != nil {
				svc.On("Quote", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			rec := doRequest(svc, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
