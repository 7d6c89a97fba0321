package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/catering-ops/backend/internal/domain/entity"
)

const csvTimeLayout = "2006-01-02 15:04:05"

// orderRow is one CSV line of an orders export.
type orderRow struct {
	OrderNumber    string `csv:"order_number"`
	CreatedAt      string `csv:"created_at"`
	DeliveryDate   string `csv:"delivery_date"`
	ClientName     string `csv:"client"`
	DeliveryStatus string `csv:"status"`
	Items          int    `csv:"items"`
	Products       string `csv:"products"`
	Subtotal       string `csv:"subtotal"`
	Tax            string `csv:"tax"`
	Total          string `csv:"total"`
	Notes          string `csv:"notes"`
}

// ExportCSV writes one row per order with a header line.
// Amounts are plain decimals so spreadsheets can sum them.
func (e *Exporter) ExportCSV(ctx context.Context, orders []*entity.Order) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows := make([]*orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, newOrderRow(o, e.location))
	}

	if len(rows) == 0 {
		// header only
		return []byte(strings.Join(csvHeader(), ",") + "\n"), nil
	}

	data, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return data, nil
}

func newOrderRow(o *entity.Order, loc *time.Location) *orderRow {
	products := make([]string, 0, len(o.Items))
	quantity := 0
	for _, item := range o.Items {
		products = append(products, fmt.Sprintf("%dx %s", item.Quantity, item.ProductName))
		quantity += item.Quantity
	}

	row := &orderRow{
		OrderNumber:    o.OrderNumber,
		ClientName:     o.ClientName,
		DeliveryStatus: string(o.DeliveryStatus),
		Items:          quantity,
		Products:       strings.Join(products, "; "),
		Subtotal:       o.Subtotal.StringFixed(2),
		Tax:            o.Tax.StringFixed(2),
		Total:          o.Total.StringFixed(2),
		Notes:          o.Notes,
	}
	if !o.CreatedAt.IsZero() {
		row.CreatedAt = o.CreatedAt.In(loc).Format(csvTimeLayout)
	}
	if !o.DeliveryDate.IsZero() {
		row.DeliveryDate = o.DeliveryDate.UTC().Format("2006-01-02")
	}
	return row
}

func csvHeader() []string {
	return []string{
		"order_number", "created_at", "delivery_date", "client", "status",
		"items", "products", "subtotal", "tax", "total", "notes",
	}
}
