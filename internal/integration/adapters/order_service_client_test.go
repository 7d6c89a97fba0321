package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

func TestOrderServiceClient_FetchOrders(t *testing.T) {
	clientID := uuid.MustParse("8f2d9c57-1d0e-4a35-9d1b-5b2f0b6b8c11")
	var gotPath, gotAuth string
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"0b8e3f3e-1b8a-4d7e-9d0c-3f4f5b6a7c81","order_number":"ORD-20240610-0001",
			 "client_id":"8f2d9c57-1d0e-4a35-9d1b-5b2f0b6b8c11","client_name":"Acme",
			 "delivery_date":"2024-06-11","delivery_status":"DELIVERED",
			 "items":[{"product_name":"Lasagna","options":["Size: Family"],"quantity":2,"unit_price":"25.00","line_total":"50.00"}],
			 "subtotal":"50.00","tax":"5.00","total":"55.00","created_at":"2024-06-10T09:30:00Z"},
			{"id":"1c9f4a4f-2c9b-4e8f-8e1d-4a5a6c7b8d92","order_number":"ORD-20240610-0002",
			 "client_id":"8f2d9c57-1d0e-4a35-9d1b-5b2f0b6b8c11","delivery_status":"PENDING",
			 "total":"10.00","created_at":"not-a-date"}
		]`))
	}))
	defer server.Close()

	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	rng := valueobject.DateRange{Start: start, End: start.AddDate(0, 0, 2)}
	status := entity.DeliveryStatusDelivered

	client := NewOrderServiceClient(server.URL+"/", 5*time.Second)
	orders, err := client.FetchOrders(context.Background(), adapter.OrderQuery{
		Range:     &rng,
		Status:    &status,
		ClientID:  &clientID,
		AuthToken: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "/orders", gotPath)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, map[string]string{
		"start_date": "2024-06-10",
		"end_date":   "2024-06-12",
		"status":     "DELIVERED",
		"client_id":  clientID.String(),
	}, gotQuery)

	require.Len(t, orders, 2)
	first := orders[0]
	assert.Equal(t, "ORD-20240610-0001", first.OrderNumber)
	assert.Equal(t, entity.DeliveryStatusDelivered, first.DeliveryStatus)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC), first.CreatedAt)
	assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC), first.DeliveryDate)
	assert.Equal(t, "55", first.Total.String())
	require.Len(t, first.Items, 1)
	assert.Equal(t, first.ID, first.Items[0].OrderID)
	assert.Equal(t, []string{"Size: Family"}, first.Items[0].Options)

	// malformed timestamps decode to the zero time
	assert.True(t, orders[1].CreatedAt.IsZero())
}

func TestOrderServiceClient_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOrderServiceClient(server.URL, time.Second)
	_, err := client.FetchOrders(context.Background(), adapter.OrderQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "database unavailable")
}
