package manage_catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-CourtBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
)

// serviceMock реализует только используемые в тестах методы
type serviceMock struct {
	CatalogService
	mock.Mock
}

func (m *serviceMock) ListCourts(ctx context.Context) (*models.CourtListResponse, error) {
	args := m.Called(ctx)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.CourtListResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *serviceMock) CreateCourt(ctx context.Context, req *models.CourtRequest) (*models.CourtResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.CourtResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *serviceMock) DeleteCourt(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *serviceMock) UpdateCoach(ctx context.Context, id int64, req *models.CoachRequest) (*models.CoachResponse, error) {
	args := m.Called(ctx, id, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.CoachResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *serviceMock) CreatePricingRule(ctx context.Context, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.PricingRuleResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(svc CatalogService) *mux.Router {
	h := NewHandler(svc, logger.Discard())
	router := mux.NewRouter()
	router.HandleFunc("/admin/courts", h.ListCourts).Methods(http.MethodGet)
	router.HandleFunc("/admin/courts", h.CreateCourt).Methods(http.MethodPost)
	router.HandleFunc("/admin/courts/{id}", h.DeleteCourt).Methods(http.MethodDelete)
	router.HandleFunc("/admin/coaches/{id}", h.UpdateCoach).Methods(http.MethodPut)
	router.HandleFunc("/admin/pricing-rules", h.CreatePricingRule).Methods(http.MethodPost)
	return router
}

func serve(svc CatalogService, method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)
	return rec
}

func TestHandler_ListCourts(t *testing.T) {
	svc := &serviceMock{}
	svc.On("ListCourts", mock.Anything).Return(&models.CourtListResponse{
		Courts: []models.CourtResponse{{ID: 1, Name: "Court 1"}, {ID: 2, Name: "Court 2", IsActive: false}},
	}, nil)

	rec := serve(svc, http.MethodGet, "/admin/courts", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []models.CourtResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestHandler_CreateCourt(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("CreateCourt", mock.Anything, mock.MatchedBy(func(r *models.CourtRequest) bool {
			return r.Name == "Court 5" && r.Category == "outdoor" && r.BasePrice == 15 && r.IsActive == nil
		})).Return(&models.CourtResponse{ID: 5, Name: "Court 5", Category: "outdoor", BasePrice: 15, IsActive: true}, nil)

		rec := serve(svc, http.MethodPost, "/admin/courts", `{"name":"Court 5","category":"outdoor","basePrice":15}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp models.CourtResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(5), resp.ID)
		assert.True(t, resp.IsActive)
	})

	t.Run("validation message without prefix", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("CreateCourt", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: category must be indoor or outdoor", catalog.ErrInvalidInput))

		rec := serve(svc, http.MethodPost, "/admin/courts", `{"name":"Court 5","category":"roof","basePrice":15}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"category must be indoor or outdoor"`)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := serve(&serviceMock{}, http.MethodPost, "/admin/courts", `{"name":"Court 5","surface":"clay"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_DeleteCourt(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		serviceErr error
		callsSvc   bool
		wantStatus int
	}{
		{name: "deleted", url: "/admin/courts/3", callsSvc: true, wantStatus: http.StatusNoContent},
		{name: "not found", url: "/admin/courts/3", serviceErr: catalog.ErrCourtNotFound, callsSvc: true, wantStatus: http.StatusNotFound},
		{name: "referenced by bookings", url: "/admin/courts/3", serviceErr: catalog.ErrResourceInUse, callsSvc: true, wantStatus: http.StatusConflict},
		{name: "internal", url: "/admin/courts/3", serviceErr: catalog.ErrInternal, callsSvc: true, wantStatus: http.StatusInternalServerError},
		{name: "bad id", url: "/admin/courts/zero", wantStatus: http.StatusBadRequest},
		{name: "non positive id", url: "/admin/courts/0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			if tt.callsSvc {
				svc.On("DeleteCourt", mock.Anything, int64(3)).Return(tt.serviceErr)
			}

			rec := serve(svc, http.MethodDelete, tt.url, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_UpdateCoach(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("UpdateCoach", mock.Anything, int64(2), mock.MatchedBy(func(r *models.CoachRequest) bool {
			return r.Name == "Vikram" && r.HourlyRate == 28 && r.IsAvailable != nil && !*r.IsAvailable
		})).Return(&models.CoachResponse{ID: 2, Name: "Vikram", HourlyRate: 28}, nil)

		rec := serve(svc, http.MethodPut, "/admin/coaches/2", `{"name":"Vikram","hourlyRate":28,"isAvailable":false}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &serviceMock{}
		svc.On("UpdateCoach", mock.Anything, int64(9), mock.Anything).Return(nil, catalog.ErrCoachNotFound)

		rec := serve(svc, http.MethodPut, "/admin/coaches/9", `{"name":"Nobody","hourlyRate":10}`)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), msgCoachNotFound)
	})
}

func TestHandler_CreatePricingRule(t *testing.T) {
	svc := &serviceMock{}
	svc.On("CreatePricingRule", mock.Anything, mock.MatchedBy(func(r *models.PricingRuleRequest) bool {
		return r.Kind == "weekend" && r.Multiplier == 1.3
	})).Return(&models.PricingRuleResponse{ID: 4, Name: "Weekend", Kind: "weekend", Multiplier: 1.3, IsActive: true}, nil)

	rec := serve(svc, http.MethodPost, "/admin/pricing-rules", `{"name":"Weekend","kind":"weekend","multiplier":1.3}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
