package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/application/usecase/report"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/cache"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
	"github.com/catering-ops/backend/internal/integration/entrypoint/middleware"
	"github.com/catering-ops/backend/internal/integration/export"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidators(); err != nil {
		panic(err)
	}
}

type stubSource struct {
	orders  []*entity.Order
	err     error
	queries []adapter.OrderQuery
}

func (s *stubSource) FetchOrders(_ context.Context, q adapter.OrderQuery) ([]*entity.Order, error) {
	s.queries = append(s.queries, q)
	return s.orders, s.err
}

// 2024-06-12 is a Wednesday.
var testNow = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func newReportRouter(source adapter.OrderSource, role entity.Role, userID uuid.UUID) *gin.Engine {
	memCache := cache.NewMemoryCache()
	guard := report.NewSelectionGuard(cache.NewMemorySequencer())
	exporter := export.NewExporter(export.Config{Locale: "en", CurrencySymbol: "$"})

	daily := report.NewGetDailySummaryUseCase(source, clock)
	c := NewReportController(
		report.NewGetOrdersSummaryUseCase(source, guard, memCache, time.Hour, clock),
		report.NewGetLastSummaryUseCase(memCache),
		report.NewGetFinancialsUseCase(source, guard, clock),
		daily,
		report.NewExportOrdersUseCase(source, exporter, clock),
		nil,
	)

	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		ctx.Set(string(middleware.UserIDKey), userID)
		ctx.Set(string(middleware.UserRoleKey), role)
		ctx.Set(string(middleware.AccessTokenKey), "caller-token")
	})
	r.GET("/reports/orders/summary", c.OrdersSummary)
	r.GET("/reports/orders/summary/last", c.LastOrdersSummary)
	r.GET("/reports/financials", c.Financials)
	r.GET("/reports/daily-summary", c.DailySummary)
	r.GET("/reports/orders/export", c.ExportOrders)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func newOrder(createdAt time.Time, status entity.DeliveryStatus, total int64) *entity.Order {
	return &entity.Order{
		ID:             uuid.New(),
		OrderNumber:    "ORD-" + createdAt.Format("20060102") + "-0001",
		ClientID:       uuid.New(),
		ClientName:     "Acme",
		DeliveryDate:   time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, time.UTC),
		DeliveryStatus: status,
		Total:          decimal.NewFromInt(total),
		Subtotal:       decimal.NewFromInt(total),
		CreatedAt:      createdAt,
	}
}

func TestReportController_OrdersSummary(t *testing.T) {
	source := &stubSource{orders: []*entity.Order{
		newOrder(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), entity.DeliveryStatusDelivered, 10),
		newOrder(time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC), entity.DeliveryStatusPending, 10),
		newOrder(time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC), entity.DeliveryStatusCancelled, 10),
	}}
	r := newReportRouter(source, entity.RoleAdmin, uuid.New())

	w := get(r, "/reports/orders/summary?period=THIS_WEEK")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Period      string `json:"period"`
		Range       struct{ Start, End string }
		TotalOrders int `json:"total_orders"`
		DailyOrders []struct {
			Key   string `json:"key"`
			Count int    `json:"count"`
		} `json:"daily_orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "this_week", body.Period)
	assert.Equal(t, "2024-06-10", body.Range.Start)
	assert.Equal(t, "2024-06-12", body.Range.End)
	assert.Equal(t, 3, body.TotalOrders)
	require.Len(t, body.DailyOrders, 3)
	assert.Equal(t, 2, body.DailyOrders[0].Count)
	assert.Equal(t, 1, body.DailyOrders[1].Count)
	assert.Equal(t, 0, body.DailyOrders[2].Count)

	// the caller's token is forwarded to the order source
	require.NotEmpty(t, source.queries)
	assert.Equal(t, "caller-token", source.queries[0].AuthToken)

	// and the summary is kept for later
	last := get(r, "/reports/orders/summary/last?period=this_week")
	assert.Equal(t, http.StatusOK, last.Code)
	assert.Contains(t, last.Body.String(), `"total_orders":3`)
}

func TestReportController_Errors(t *testing.T) {
	tests := []struct {
		name       string
		source     *stubSource
		path       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid period",
			source:     &stubSource{},
			path:       "/reports/orders/summary?period=fortnight",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidPeriod),
		},
		{
			name:       "missing period",
			source:     &stubSource{},
			path:       "/reports/financials",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidPeriod),
		},
		{
			name:       "upstream failure",
			source:     &stubSource{err: errors.New("connection refused")},
			path:       "/reports/financials?period=today",
			wantStatus: http.StatusBadGateway,
			wantCode:   string(domainerror.ErrCodeFetchFailed),
		},
		{
			name:       "nothing cached yet",
			source:     &stubSource{},
			path:       "/reports/orders/summary/last?period=today",
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeSummaryNotCached),
		},
		{
			name:       "bad daily summary date",
			source:     &stubSource{},
			path:       "/reports/daily-summary?date=12/06/2024",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidDateFormat),
		},
		{
			name:       "bad export format",
			source:     &stubSource{},
			path:       "/reports/orders/export?period=today&format=xlsx",
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidQueryParams),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReportRouter(tt.source, entity.RoleAdmin, uuid.New())
			w := get(r, tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
			// raw upstream errors never reach the client
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestReportController_ExportCSV(t *testing.T) {
	source := &stubSource{orders: []*entity.Order{
		newOrder(time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC), entity.DeliveryStatusDelivered, 42),
	}}
	r := newReportRouter(source, entity.RoleAdmin, uuid.New())

	w := get(r, "/reports/orders/export?period=today")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="orders-today-2024-06-12.csv"`)
	assert.True(t, strings.HasPrefix(w.Body.String(), "order_number,"))
	assert.Contains(t, w.Body.String(), "42.00")
}

func TestReportController_ClientScope(t *testing.T) {
	clientUser := uuid.New()
	source := &stubSource{}
	r := newReportRouter(source, entity.RoleClient, clientUser)

	// a client cannot widen its scope with client_id
	w := get(r, "/reports/daily-summary?client_id="+uuid.NewString())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, source.queries, 1)
	require.NotNil(t, source.queries[0].ClientID)
	assert.Equal(t, clientUser, *source.queries[0].ClientID)
	assert.Nil(t, source.queries[0].DistributorID)
}

func TestScopeFromContext(t *testing.T) {
	userID := uuid.New()
	other := uuid.New()

	tests := []struct {
		name            string
		role            entity.Role
		filter          string
		wantClient      *uuid.UUID
		wantDistributor *uuid.UUID
	}{
		{name: "admin unscoped", role: entity.RoleAdmin},
		{name: "admin filters by client", role: entity.RoleAdmin, filter: other.String(), wantClient: &other},
		{name: "client pinned", role: entity.RoleClient, filter: other.String(), wantClient: &userID},
		{name: "distributor scoped", role: entity.RoleDistributor, wantDistributor: &userID},
		{name: "malformed filter ignored", role: entity.RoleChef, filter: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Set(string(middleware.UserIDKey), userID)
			c.Set(string(middleware.UserRoleKey), tt.role)

			scope := scopeFromContext(c).withClientFilter(tt.filter)
			assert.Equal(t, tt.wantClient, scope.ClientID)
			assert.Equal(t, tt.wantDistributor, scope.DistributorID)
		})
	}
}

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"stale", domainerror.NewStaleResponseError(), http.StatusConflict},
		{"fetch", domainerror.NewFetchError(errors.New("x")), http.StatusBadGateway},
		{"order not found", domainerror.NewOrderError(domainerror.ErrCodeOrderNotFound, "m", nil), http.StatusNotFound},
		{"transition", domainerror.NewOrderError(domainerror.ErrCodeInvalidStatusTransition, "m", nil), http.StatusConflict},
		{"order number taken", domainerror.NewOrderError(domainerror.ErrCodeOrderNumberTaken, "m", domainerror.ErrOrderNumberTaken), http.StatusConflict},
		{"sku exists", domainerror.NewProductError(domainerror.ErrCodeSKUExists, "m", nil), http.StatusConflict},
		{"bad multiplier", domainerror.NewProductError(domainerror.ErrCodeInvalidPriceMultiplier, "m", nil), http.StatusBadRequest},
		{"email exists", domainerror.NewAuthError(domainerror.ErrCodeEmailAlreadyExists, "m", nil), http.StatusConflict},
		{"bad credentials", domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "m", nil), http.StatusUnauthorized},
		{"email rejected", domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "m", nil), http.StatusUnprocessableEntity},
		{"email provider down", domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "m", nil), http.StatusBadGateway},
		{"wrapped", errors.Join(errors.New("ctx"), domainerror.NewOrderError(domainerror.ErrCodeEmptyOrder, "m", nil)), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			handleError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHealthController(t *testing.T) {
	h := NewHealthController(map[string]Checker{
		"database": func(context.Context) bool { return true },
		"redis":    func(context.Context) bool { return false },
	})

	r := gin.New()
	r.GET("/health", h.Check)
	w := get(r, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, map[string]string{"database": "connected", "redis": "disconnected"}, body.Dependencies)
}
