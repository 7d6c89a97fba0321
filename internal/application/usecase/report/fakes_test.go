package report

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

type fakeSource struct {
	orders  []*entity.Order
	err     error
	queries []adapter.OrderQuery
	// during runs inside FetchOrders, before it returns.
	during func()
}

func (f *fakeSource) FetchOrders(_ context.Context, query adapter.OrderQuery) ([]*entity.Order, error) {
	f.queries = append(f.queries, query)
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.orders, nil
}

type fakeSequencer struct {
	mu     sync.Mutex
	tokens map[string]uint64
}

func newFakeSequencer() *fakeSequencer {
	return &fakeSequencer{tokens: make(map[string]uint64)}
}

func (s *fakeSequencer) Next(_ context.Context, scope string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[scope]++
	return s.tokens[scope], nil
}

func (s *fakeSequencer) Latest(_ context.Context, scope string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[scope], nil
}

type fakeCache struct {
	values map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

type fakeExporter struct {
	csvOrders []*entity.Order
	pdfRange  valueobject.DateRange
}

func (e *fakeExporter) ExportCSV(_ context.Context, orders []*entity.Order) ([]byte, error) {
	e.csvOrders = orders
	return []byte("csv"), nil
}

func (e *fakeExporter) ExportPDF(_ context.Context, _ string, r valueobject.DateRange, _ []*entity.Order) ([]byte, error) {
	e.pdfRange = r
	return []byte("%PDF"), nil
}

type fakeRenderer struct{}

func (fakeRenderer) RenderPDF(_ context.Context, _ *entity.DailySummary) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (fakeRenderer) RenderEmail(_ context.Context, s *entity.DailySummary) (string, string, error) {
	return "<p>summary</p>", "summary", nil
}

type fakeSender struct {
	sent []adapter.SendEmailInput
	err  error
}

func (s *fakeSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, input)
	return &adapter.SendEmailResult{ResendID: "msg-1"}, nil
}

// day returns midnight UTC of the given date.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newOrder(createdAt time.Time, status entity.DeliveryStatus, total int64) *entity.Order {
	return &entity.Order{
		ID:             uuid.New(),
		OrderNumber:    "ORD-" + createdAt.Format("0102150405"),
		ClientID:       uuid.New(),
		ClientName:     "Client",
		DeliveryDate:   createdAt,
		DeliveryStatus: status,
		Subtotal:       decimal.NewFromInt(total),
		Tax:            decimal.Zero,
		Total:          decimal.NewFromInt(total),
		CreatedAt:      createdAt,
	}
}
