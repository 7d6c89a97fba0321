// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryLine is one product line of a client's daily summary.
type SummaryLine struct {
	OrderNumber string          `json:"order_number"`
	ProductName string          `json:"product_name"`
	Options     []string        `json:"options,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ClientSummary groups one client's orders for a delivery day, invoice style.
type ClientSummary struct {
	ClientID   uuid.UUID       `json:"client_id"`
	ClientName string          `json:"client_name"`
	OrderCount int             `json:"order_count"`
	Lines      []SummaryLine   `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// ProductTotal is the quantity of a product to prepare for the day.
type ProductTotal struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// DailySummary is the per-client and per-product breakdown of a delivery day.
type DailySummary struct {
	Date          time.Time       `json:"date"`
	Clients       []ClientSummary `json:"clients"`
	ProductTotals []ProductTotal  `json:"product_totals"`
	OrderCount    int             `json:"order_count"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}
