package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
)

const (
	upstreamDateLayout = "2006-01-02"
	maxErrorBodyBytes  = 512
)

// remoteOrderItem is the upstream wire shape of an order line.
type remoteOrderItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Options     []string        `json:"options"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// remoteOrder is the upstream wire shape of an order.
// Timestamps are kept as strings so one malformed row does not fail the whole page.
type remoteOrder struct {
	ID             uuid.UUID         `json:"id"`
	OrderNumber    string            `json:"order_number"`
	ClientID       uuid.UUID         `json:"client_id"`
	ClientName     string            `json:"client_name"`
	DistributorID  *uuid.UUID        `json:"distributor_id"`
	DeliveryDate   string            `json:"delivery_date"`
	DeliveryStatus string            `json:"delivery_status"`
	Items          []remoteOrderItem `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Tax            decimal.Decimal   `json:"tax"`
	Total          decimal.Decimal   `json:"total"`
	Notes          string            `json:"notes"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
}

// orderServiceClient implements adapter.OrderSource against the upstream order service.
type orderServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOrderServiceClient creates a client for the upstream order service at baseURL.
func NewOrderServiceClient(baseURL string, timeout time.Duration) adapter.OrderSource {
	return &orderServiceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchOrders calls GET {baseURL}/orders with the query encoded as parameters.
// The caller's token is forwarded as a bearer token.
func (c *orderServiceClient) FetchOrders(ctx context.Context, query adapter.OrderQuery) ([]*entity.Order, error) {
	endpoint := c.baseURL + "/orders"
	if params := encodeOrderQuery(query); len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if query.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+query.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("order service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []remoteOrder
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode order service response: %w", err)
	}

	orders := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].toEntity())
	}
	return orders, nil
}

func encodeOrderQuery(query adapter.OrderQuery) url.Values {
	params := url.Values{}
	if query.Range != nil {
		params.Set("start_date", query.Range.Start.Format(upstreamDateLayout))
		params.Set("end_date", query.Range.End.Format(upstreamDateLayout))
	}
	if query.DeliveryDate != nil {
		params.Set("delivery_date", query.DeliveryDate.Format(upstreamDateLayout))
	}
	if query.Status != nil {
		params.Set("status", string(*query.Status))
	}
	if query.ClientID != nil {
		params.Set("client_id", query.ClientID.String())
	}
	if query.DistributorID != nil {
		params.Set("distributor_id", query.DistributorID.String())
	}
	return params
}

func (r *remoteOrder) toEntity() *entity.Order {
	items := make([]entity.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = entity.OrderItem{
			ID:          item.ID,
			OrderID:     r.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Options:     item.Options,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	order := &entity.Order{
		ID:             r.ID,
		OrderNumber:    r.OrderNumber,
		ClientID:       r.ClientID,
		ClientName:     r.ClientName,
		DistributorID:  r.DistributorID,
		DeliveryStatus: entity.DeliveryStatus(r.DeliveryStatus),
		Items:          items,
		Subtotal:       r.Subtotal,
		Tax:            r.Tax,
		Total:          r.Total,
		Notes:          r.Notes,
		CreatedAt:      parseTimestamp(r.CreatedAt),
		UpdatedAt:      parseTimestamp(r.UpdatedAt),
	}
	if d, err := time.Parse(upstreamDateLayout, r.DeliveryDate); err == nil {
		order.DeliveryDate = d
	} else {
		order.DeliveryDate = parseTimestamp(r.DeliveryDate)
	}
	return order
}

// parseTimestamp returns the zero time for values that are not RFC 3339.
// Aggregation skips orders with a zero CreatedAt.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
