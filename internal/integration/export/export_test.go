package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

func newTestExporter() *Exporter {
	return NewExporter(Config{CompanyName: "Catering Ops", Locale: "en", CurrencySymbol: "$", Location: time.UTC})
}

func testOrders() []*entity.Order {
	return []*entity.Order{
		{
			ID:             uuid.New(),
			OrderNumber:    "ORD-20240610-0001",
			ClientName:     "Acme",
			DeliveryDate:   time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
			DeliveryStatus: entity.DeliveryStatusDelivered,
			Items: []entity.OrderItem{
				{ProductName: "Lasagna", Quantity: 2},
				{ProductName: "Salad", Quantity: 1},
			},
			Subtotal:  decimal.RequireFromString("1200"),
			Tax:       decimal.RequireFromString("120"),
			Total:     decimal.RequireFromString("1320"),
			CreatedAt: time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:             uuid.New(),
			OrderNumber:    "ORD-20240610-0002",
			ClientName:     "Globex, Inc.",
			DeliveryStatus: entity.DeliveryStatusPending,
			Total:          decimal.RequireFromString("10.5"),
		},
	}
}

func TestFormatter(t *testing.T) {
	f := NewFormatter("en", "$")
	assert.Equal(t, "$1,234.50", f.Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-$3.00", f.Money(decimal.NewFromInt(-3)))
	assert.Equal(t, "12,000", f.Count(12000))

	fallback := NewFormatter("not a locale!", "")
	assert.Equal(t, "0.25", fallback.Money(decimal.RequireFromString("0.245")))
}

func TestExporter_ExportCSV(t *testing.T) {
	data, err := newTestExporter().ExportCSV(context.Background(), testOrders())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader(), records[0])
	assert.Equal(t, []string{
		"ORD-20240610-0001", "2024-06-10 09:30:00", "2024-06-11", "Acme", "DELIVERED",
		"3", "2x Lasagna; 1x Salad", "1200.00", "120.00", "1320.00", "",
	}, records[1])

	// zero timestamps are left empty, commas are quoted
	assert.Equal(t, "", records[2][1])
	assert.Equal(t, "Globex, Inc.", records[2][3])
	assert.Equal(t, "10.50", records[2][9])
}

func TestExporter_ExportCSV_Empty(t *testing.T) {
	data, err := newTestExporter().ExportCSV(context.Background(), nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader(), records[0])
}

func TestExporter_ExportPDF(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	rng := valueobject.DateRange{Start: start, End: start.AddDate(0, 0, 2)}

	data, err := newTestExporter().ExportPDF(context.Background(), "Orders - this week", rng, testOrders())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExporter_RenderSummaryPDF(t *testing.T) {
	summary := &entity.DailySummary{
		Date: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		Clients: []entity.ClientSummary{{
			ClientName: "Acme",
			OrderCount: 1,
			Lines: []entity.SummaryLine{{
				OrderNumber: "ORD-20240610-0001",
				ProductName: "Lasagna",
				Options:     []string{"Size: Family"},
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(25),
				LineTotal:   decimal.NewFromInt(50),
			}},
			Subtotal: decimal.NewFromInt(50),
			Tax:      decimal.NewFromInt(5),
			Total:    decimal.NewFromInt(55),
		}},
		ProductTotals: []entity.ProductTotal{{ProductName: "Lasagna", Quantity: 2}},
		OrderCount:    1,
		GrandTotal:    decimal.NewFromInt(55),
	}

	data, err := newTestExporter().RenderSummaryPDF(context.Background(), summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty, err := newTestExporter().RenderSummaryPDF(context.Background(), &entity.DailySummary{Date: summary.Date})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF-")))
}

func TestDocument_TranslatesNonASCIIText(t *testing.T) {
	e := NewExporter(Config{CompanyName: "Café Ñandú", Locale: "en", CurrencySymbol: "€", Location: time.UTC})

	d := e.newDocument("Orders")
	d.SetCompression(false)
	d.SetFont(pdfFont, "", 9)
	tableRow(d, orderColumns, []string{"ORD-20240610-0001", "", "Crème Brûlée Co.", "pending", e.format.Money(decimal.NewFromInt(5))})

	data, err := output(d)
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{name: "company name", want: "Caf\xe9 \xd1and\xfa"},
		{name: "client name", want: "Cr\xe8me Br\xfbl\xe9e Co."},
		{name: "euro sign", want: "\x80"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, bytes.Contains(data, []byte(tt.want)))
		})
	}
	assert.False(t, bytes.Contains(data, []byte("\xc3\xa9")), "raw UTF-8 bytes leaked into the content stream")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
}
