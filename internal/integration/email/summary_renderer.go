package email

import (
	"context"
	"strings"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/integration/email/templates"
	"github.com/catering-ops/backend/internal/integration/export"
)

const summaryDateLayout = "Monday, January 2, 2006"

// pdfRenderer renders a daily summary document.
type pdfRenderer interface {
	RenderSummaryPDF(ctx context.Context, summary *entity.DailySummary) ([]byte, error)
}

// SummaryRenderer implements adapter.SummaryRenderer with the email templates
// and the PDF exporter.
type SummaryRenderer struct {
	templates   *templates.Renderer
	pdf         pdfRenderer
	format      *export.Formatter
	companyName string
}

// NewSummaryRenderer creates a new SummaryRenderer.
func NewSummaryRenderer(tmpl *templates.Renderer, pdf pdfRenderer, format *export.Formatter, companyName string) *SummaryRenderer {
	return &SummaryRenderer{
		templates:   tmpl,
		pdf:         pdf,
		format:      format,
		companyName: companyName,
	}
}

// RenderPDF renders the summary as a printable PDF.
func (r *SummaryRenderer) RenderPDF(ctx context.Context, summary *entity.DailySummary) ([]byte, error) {
	return r.pdf.RenderSummaryPDF(ctx, summary)
}

// RenderEmail renders the HTML and plain text bodies of the summary email.
func (r *SummaryRenderer) RenderEmail(ctx context.Context, summary *entity.DailySummary) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	return r.templates.Render(templates.TemplateDailySummary, r.view(summary))
}

func (r *SummaryRenderer) view(summary *entity.DailySummary) templates.DailySummaryData {
	data := templates.DailySummaryData{
		CompanyName: r.companyName,
		DateLabel:   summary.Date.Format(summaryDateLayout),
		OrderCount:  r.format.Count(summary.OrderCount),
		GrandTotal:  r.format.Money(summary.GrandTotal),
	}

	for _, c := range summary.Clients {
		client := templates.ClientSummaryData{
			Name:       c.ClientName,
			OrderCount: r.format.Count(c.OrderCount),
			Subtotal:   r.format.Money(c.Subtotal),
			Tax:        r.format.Money(c.Tax),
			Total:      r.format.Money(c.Total),
		}
		for _, l := range c.Lines {
			client.Lines = append(client.Lines, templates.SummaryLineData{
				OrderNumber: l.OrderNumber,
				Product:     l.ProductName,
				Options:     strings.Join(l.Options, ", "),
				Quantity:    r.format.Count(l.Quantity),
				UnitPrice:   r.format.Money(l.UnitPrice),
				LineTotal:   r.format.Money(l.LineTotal),
			})
		}
		data.Clients = append(data.Clients, client)
	}

	for _, p := range summary.ProductTotals {
		data.ProductTotals = append(data.ProductTotals, templates.ProductTotalData{
			Product:  p.ProductName,
			Quantity: r.format.Count(p.Quantity),
		})
	}

	return data
}

var _ adapter.SummaryRenderer = (*SummaryRenderer)(nil)
