package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/biz-atlas/pkg/models/api"
	"github.com/de-tools/biz-atlas/pkg/models/domain"
	"github.com/de-tools/biz-atlas/pkg/models/store"
	"github.com/de-tools/biz-atlas/pkg/services/report"
)

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Run(ctx context.Context, rt domain.ReportType, f domain.FilterSet) (domain.Report, error) {
	args := m.Called(ctx, rt, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Report), args.Error(1)
}

func (m *mockDispatcher) SupportedReports() []domain.ReportType {
	args := m.Called()
	return args.Get(0).([]domain.ReportType)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Execute(ctx context.Context, query string, args ...any) (store.ResultSet, error) {
	called := m.Called(ctx, query, args)
	if called.Get(0) == nil {
		return nil, called.Error(1)
	}
	return called.Get(0).(store.ResultSet), called.Error(1)
}

func (m *mockStore) TestConnection(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func newTestRouter(h *Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/reports", h.ListReports)
		r.Get("/reports/{report}", h.GetReport)
	})
	return router
}

func TestHandler_ListReports(t *testing.T) {
	dispatcher := new(mockDispatcher)
	dispatcher.On("SupportedReports").
		Return([]domain.ReportType{domain.ReportOverview, domain.ReportSales})

	h := NewHandler(dispatcher, nil)
	server := httptest.NewServer(newTestRouter(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/reports")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool               `json:"success"`
		Data    api.ReportTypeList `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"overview", "sales"}, body.Data.Reports)
}

func TestHandler_GetReport(t *testing.T) {
	dispatcher := new(mockDispatcher)
	dispatcher.On("Run", mock.Anything, domain.ReportCategories, mock.MatchedBy(func(f domain.FilterSet) bool {
		return f.DateRange == domain.DateRange2013
	})).Return(domain.CategoriesReport{
		Categories: []domain.DimensionMetric{
			{Key: "1", Name: "Bikes", Value: 100, Share: 100, Children: []domain.DimensionMetric{}},
		},
	}, nil)

	h := NewHandler(dispatcher, nil)
	server := httptest.NewServer(newTestRouter(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/reports/categories?dateRange=2013")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool                 `json:"success"`
		Data    api.CategoriesReport `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data.Categories, 1)
	assert.Equal(t, "Bikes", body.Data.Categories[0].Name)
	assert.NotNil(t, body.Data.Categories[0].Subcategories)
	dispatcher.AssertExpectations(t)
}

func TestHandler_GetReport_Unknown(t *testing.T) {
	dispatcher := new(mockDispatcher)
	dispatcher.On("Run", mock.Anything, domain.ReportType("weather"), mock.Anything).
		Return(nil, fmt.Errorf("%w: %q", report.ErrUnknownReport, "weather"))

	h := NewHandler(dispatcher, nil)
	server := httptest.NewServer(newTestRouter(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/reports/weather")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body api.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error, "unknown report type")
}

func TestHandler_Health(t *testing.T) {
	st := new(mockStore)
	st.On("TestConnection", mock.Anything).Return("8.0.36", nil)

	h := NewHandler(new(mockDispatcher), st)
	server := httptest.NewServer(newTestRouter(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Success bool       `json:"success"`
		Data    api.Health `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, "8.0.36", body.Data.Server)
}

func TestHandler_Health_StoreDown(t *testing.T) {
	st := new(mockStore)
	st.On("TestConnection", mock.Anything).Return("", errors.New("dial tcp: connection refused"))

	h := NewHandler(new(mockDispatcher), st)
	server := httptest.NewServer(newTestRouter(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandler_GetReport_StoreFailure(t *testing.T) {
	dispatcher := new(mockDispatcher)
	dispatcher.On("Run", mock.Anything, domain.ReportOverview, mock.Anything).
		Return(nil, errors.New("summary query failed: connection reset"))

	h := NewHandler(dispatcher, nil)
	server := httptest.NewServer(newTestRouter(h))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/reports/overview")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body api.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotContains(t, body.Error, "connection reset", "store errors never leak to clients")
}
