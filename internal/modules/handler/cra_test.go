package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/activitae/cra-api/internal/modules/model"
	"github.com/activitae/cra-api/internal/modules/repo"
	"github.com/activitae/cra-api/internal/modules/serializer"
	"github.com/activitae/cra-api/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCRAService struct {
	mock.Mock
}

func (m *MockCRAService) List(ctx context.Context, in service.ListCRAsInput) (*service.ListCRAsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListCRAsOutput), args.Error(1)
}

func (m *MockCRAService) Get(ctx context.Context, id uuid.UUID) (*model.CRA, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRA), args.Error(1)
}

func (m *MockCRAService) Create(ctx context.Context, in service.CreateCRAInput) (*model.CRA, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRA), args.Error(1)
}

func (m *MockCRAService) Update(ctx context.Context, id uuid.UUID, in service.UpdateCRAInput) (*model.CRA, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CRA), args.Error(1)
}

func (m *MockCRAService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Get(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}

func (m *MockStatsService) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func setupCRARouter(svc service.CRAService, stats service.StatsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	serializer.SetLogger(zap.NewNop())
	RegisterValidations()

	h := NewCRAHandler(svc, stats)
	r := gin.New()
	cras := r.Group("/api/cras")
	{
		cras.GET("", h.ListCRAs)
		cras.POST("", h.CreateCRA)
		cras.GET("/stats", h.GetStats)
		cras.GET("/:id", h.GetCRA)
		cras.PUT("/:id", h.UpdateCRA)
		cras.DELETE("/:id", h.DeleteCRA)
	}
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) serializer.Response {
	var resp serializer.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCRAHandler_ListCRAs(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setup          func(*MockCRAService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:  "success - no filters",
			query: "",
			setup: func(svc *MockCRAService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListCRAsInput) bool {
					return in.Filters == repo.Filters{} && in.Limit == 50 && in.Offset == 0
				})).Return(&service.ListCRAsOutput{
					Items:  []model.CRA{{ID: uuid.New(), Client: "Acme Corp"}},
					Total:  1,
					Limit:  50,
					Offset: 0,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.True(t, resp.Success)
				require.NotNil(t, resp.Pagination)
				assert.EqualValues(t, 1, resp.Pagination.Total)
				assert.False(t, resp.Pagination.HasMore)
			},
		},
		{
			name:  "success - all filters forwarded",
			query: "?status=submitted&client=acme&startDate=2025-01-01&endDate=2025-01-31&limit=10&offset=20",
			setup: func(svc *MockCRAService) {
				svc.On("List", mock.Anything, mock.MatchedBy(func(in service.ListCRAsInput) bool {
					return in.Filters.Status == model.StatusSubmitted &&
						in.Filters.Client == "acme" &&
						in.Filters.StartDate.Format("2006-01-02") == "2025-01-01" &&
						in.Filters.EndDate.Format("2006-01-02") == "2025-01-31" &&
						in.Limit == 10 && in.Offset == 20
				})).Return(&service.ListCRAsOutput{
					Items: []model.CRA{}, Total: 0, Limit: 10, Offset: 20,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - unknown status value",
			query:          "?status=archived",
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.False(t, resp.Success)
				assert.NotEmpty(t, resp.Error)
			},
		},
		{
			name:           "error - malformed date",
			query:          "?startDate=01/02/2025",
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCRAService)
			tt.setup(svc)
			router := setupCRARouter(svc, new(MockStatsService))

			req := httptest.NewRequest(http.MethodGet, "/api/cras"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCRAHandler_GetCRA(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		idParam        string
		setup          func(*MockCRAService)
		expectedStatus int
	}{
		{
			name:    "success",
			idParam: id.String(),
			setup: func(svc *MockCRAService) {
				svc.On("Get", mock.Anything, id).Return(&model.CRA{ID: id, Client: "Acme Corp"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - malformed id",
			idParam:        "not-a-uuid",
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "error - not found",
			idParam: id.String(),
			setup: func(svc *MockCRAService) {
				svc.On("Get", mock.Anything, id).Return(nil, repo.ErrCRANotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCRAService)
			tt.setup(svc)
			router := setupCRARouter(svc, new(MockStatsService))

			req := httptest.NewRequest(http.MethodGet, "/api/cras/"+tt.idParam, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCRAHandler_CreateCRA(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(*MockCRAService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "success",
			body: `{
				"date": "2025-01-15",
				"client": "Acme Corp",
				"activities": [
					{"description": "Backend development", "hours": 3.5, "category": "development"},
					{"description": "Sprint planning", "hours": 1, "category": "meeting"}
				]
			}`,
			setup: func(svc *MockCRAService) {
				svc.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateCRAInput) bool {
					return in.Client == "Acme Corp" &&
						in.Date.Format("2006-01-02") == "2025-01-15" &&
						len(in.Activities) == 2
				})).Return(&model.CRA{
					ID:         uuid.New(),
					Client:     "Acme Corp",
					TotalHours: 4.5,
					Status:     model.StatusDraft,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.True(t, resp.Success)
				assert.Equal(t, "CRA created successfully", resp.Message)
				data := resp.Data.(map[string]interface{})
				assert.Equal(t, 4.5, data["total_hours"])
			},
		},
		{
			name:           "error - missing activities",
			body:           `{"date": "2025-01-15", "client": "Acme Corp"}`,
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - empty activities array",
			body: `{"date": "2025-01-15", "client": "Acme Corp", "activities": []}`,
			setup: func(svc *MockCRAService) {
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - hours not a quarter multiple",
			body: `{
				"date": "2025-01-15",
				"client": "Acme Corp",
				"activities": [{"description": "Backend development", "hours": 1.3, "category": "development"}]
			}`,
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - malformed date",
			body: `{
				"date": "15/01/2025",
				"client": "Acme Corp",
				"activities": [{"description": "Backend development", "hours": 1, "category": "development"}]
			}`,
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - approved not allowed at creation",
			body: `{
				"date": "2025-01-15",
				"client": "Acme Corp",
				"status": "approved",
				"activities": [{"description": "Backend development", "hours": 1, "category": "development"}]
			}`,
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - service-level validation surfaces as 400",
			body: `{
				"date": "2025-01-15",
				"client": "Acme Corp",
				"activities": [{"description": "Backend development", "hours": 1, "category": "development"}]
			}`,
			setup: func(svc *MockCRAService) {
				svc.On("Create", mock.Anything, mock.Anything).
					Return(nil, service.NewValidationError("date must not be in the future"))
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeResponse(t, rec)
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Message, "future")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCRAService)
			tt.setup(svc)
			router := setupCRARouter(svc, new(MockStatsService))

			req := httptest.NewRequest(http.MethodPost, "/api/cras", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCRAHandler_UpdateCRA(t *testing.T) {
	id := uuid.New()
	activityID := uuid.New()

	tests := []struct {
		name           string
		idParam        string
		body           string
		setup          func(*MockCRAService)
		expectedStatus int
	}{
		{
			name:    "success - status only",
			idParam: id.String(),
			body:    `{"status": "submitted"}`,
			setup: func(svc *MockCRAService) {
				svc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateCRAInput) bool {
					return in.Status != nil && *in.Status == model.StatusSubmitted &&
						in.Date == nil && in.Client == nil && in.Activities == nil
				})).Return(&model.CRA{ID: id, Status: model.StatusSubmitted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "success - activity replacement keeps supplied ids",
			idParam: id.String(),
			body: `{"activities": [
				{"id": "` + activityID.String() + `", "description": "Code review", "hours": 2, "category": "review"}
			]}`,
			setup: func(svc *MockCRAService) {
				svc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateCRAInput) bool {
					return len(in.Activities) == 1 &&
						in.Activities[0].ID != nil && *in.Activities[0].ID == activityID
				})).Return(&model.CRA{ID: id, TotalHours: 2}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - malformed id",
			idParam:        "not-a-uuid",
			body:           `{"status": "submitted"}`,
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - unknown status",
			idParam:        id.String(),
			body:           `{"status": "archived"}`,
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "error - not found",
			idParam: id.String(),
			body:    `{"client": "Globex"}`,
			setup: func(svc *MockCRAService) {
				svc.On("Update", mock.Anything, id, mock.Anything).Return(nil, repo.ErrCRANotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCRAService)
			tt.setup(svc)
			router := setupCRARouter(svc, new(MockStatsService))

			req := httptest.NewRequest(http.MethodPut, "/api/cras/"+tt.idParam, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCRAHandler_DeleteCRA(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		idParam        string
		setup          func(*MockCRAService)
		expectedStatus int
	}{
		{
			name:    "success",
			idParam: id.String(),
			setup: func(svc *MockCRAService) {
				svc.On("Delete", mock.Anything, id).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "error - not found",
			idParam: id.String(),
			setup: func(svc *MockCRAService) {
				svc.On("Delete", mock.Anything, id).Return(repo.ErrCRANotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "error - malformed id",
			idParam:        "not-a-uuid",
			setup:          func(svc *MockCRAService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCRAService)
			tt.setup(svc)
			router := setupCRARouter(svc, new(MockStatsService))

			req := httptest.NewRequest(http.MethodDelete, "/api/cras/"+tt.idParam, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestCRAHandler_GetStats(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stats := new(MockStatsService)
		stats.On("Get", mock.Anything).Return(&service.Stats{
			TotalCRAs:  4,
			ByStatus:   map[model.Status]int64{model.StatusDraft: 3, model.StatusSubmitted: 1},
			TotalHours: 30.25,
		}, nil)
		router := setupCRARouter(new(MockCRAService), stats)

		req := httptest.NewRequest(http.MethodGet, "/api/cras/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, float64(4), data["total_cras"])
		assert.Equal(t, 30.25, data["total_hours"])
	})

	t.Run("error - repo failure surfaces as 500", func(t *testing.T) {
		stats := new(MockStatsService)
		stats.On("Get", mock.Anything).Return(nil, errors.New("db timeout"))
		router := setupCRARouter(new(MockCRAService), stats)

		req := httptest.NewRequest(http.MethodGet, "/api/cras/stats", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
