// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// OrderExporter serializes orders into downloadable documents.
type OrderExporter interface {
	// ExportCSV writes one row per order.
	ExportCSV(ctx context.Context, orders []*entity.Order) ([]byte, error)

	// ExportPDF writes an orders report for the given range.
	ExportPDF(ctx context.Context, title string, dateRange valueobject.DateRange, orders []*entity.Order) ([]byte, error)
}

// SummaryRenderer renders a daily summary for people to read.
type SummaryRenderer interface {
	// RenderPDF renders the summary as a printable PDF.
	RenderPDF(ctx context.Context, summary *entity.DailySummary) ([]byte, error)

	// RenderEmail renders the HTML and plain text bodies of the summary email.
	RenderEmail(ctx context.Context, summary *entity.DailySummary) (html string, text string, err error)
}
