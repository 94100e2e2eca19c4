package get_resources

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) GetActiveResources(ctx context.Context) (*models.ActiveResourcesResponse, error) {
	args := m.Called(ctx)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.ActiveResourcesResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *serviceMock) GetActivePricingRules(ctx context.Context) (*models.PricingRuleListResponse, error) {
	args := m.Called(ctx)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.PricingRuleListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestHandler_Resources(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("GetActiveResources", mock.Anything).Return(&models.ActiveResourcesResponse{
			Courts:    []models.CourtResponse{{ID: 1, Name: "Court 1", Category: "indoor", BasePrice: 20}},
			Coaches:   []models.CoachResponse{},
			Equipment: []models.EquipmentResponse{},
		}, nil)

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.Discard()).Resources(rec, httptest.NewRequest(http.MethodGet, "/resources", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.ActiveResourcesResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Courts, 1)
		assert.Equal(t, "Court 1", resp.Courts[0].Name)
		assert.NotNil(t, resp.Coaches)
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("GetActiveResources", mock.Anything).Return(nil, errors.New("db down"))

		rec := httptest.NewRecorder()
		NewHandler(svc, logger.Discard()).Resources(rec, httptest.NewRequest(http.MethodGet, "/resources", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_PricingRules(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetActivePricingRules", mock.Anything).Return(&models.PricingRuleListResponse{
		Rules: []models.PricingRuleResponse{
			{ID: 1, Name: "Evening peak", Kind: "peak", Multiplier: 1.5, IsActive: true},
			{ID: 2, Name: "Weekend", Kind: "weekend", Multiplier: 1.3, IsActive: true},
		},
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Discard()).PricingRules(rec, httptest.NewRequest(http.MethodGet, "/pricing-rules", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []models.PricingRuleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, 1.5, resp[0].Multiplier)
}
