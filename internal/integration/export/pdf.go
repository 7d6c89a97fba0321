package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

const (
	pdfFont      = "Arial"
	pdfDayLayout = "Jan 2, 2006"
	lineHeight   = 7.0
)

// column is a fixed-width table column.
type column struct {
	title string
	width float64
	align string
}

var orderColumns = []column{
	{title: "Order", width: 38, align: "L"},
	{title: "Created", width: 30, align: "L"},
	{title: "Client", width: 52, align: "L"},
	{title: "Status", width: 40, align: "L"},
	{title: "Total", width: 30, align: "R"},
}

var lineColumns = []column{
	{title: "Order", width: 36, align: "L"},
	{title: "Product", width: 74, align: "L"},
	{title: "Qty", width: 20, align: "R"},
	{title: "Unit", width: 30, align: "R"},
	{title: "Amount", width: 30, align: "R"},
}

// ExportPDF renders a table of orders for the given range with status totals.
func (e *Exporter) ExportPDF(ctx context.Context, title string, dateRange valueobject.DateRange, orders []*entity.Order) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := e.newDocument(title)
	pdf.SetFont(pdfFont, "", 11)
	pdf.cell(0, lineHeight, fmt.Sprintf("%s - %s", dateRange.Start.Format(pdfDayLayout), dateRange.End.Format(pdfDayLayout)), "", 1, "L", false)
	pdf.Ln(4)

	tableHeader(pdf, orderColumns)
	pdf.SetFont(pdfFont, "", 9)

	statusCounts := make(map[entity.DeliveryStatus]int)
	for _, o := range orders {
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.In(e.location).Format("2006-01-02 15:04")
		}
		tableRow(pdf, orderColumns, []string{
			o.OrderNumber,
			created,
			truncate(o.ClientName, 28),
			string(o.DeliveryStatus),
			e.format.Money(o.Total),
		})
		statusCounts[o.DeliveryStatus]++
	}

	pdf.Ln(4)
	pdf.SetFont(pdfFont, "B", 10)
	pdf.cell(0, lineHeight, "Orders: "+e.format.Count(len(orders)), "", 1, "L", false)
	pdf.SetFont(pdfFont, "", 10)
	for _, status := range entity.DeliveryStatuses {
		if n := statusCounts[status]; n > 0 {
			pdf.cell(0, lineHeight-1, fmt.Sprintf("%s: %s", status, e.format.Count(n)), "", 1, "L", false)
		}
	}

	return output(pdf)
}

// RenderSummaryPDF renders a daily summary as a per-client invoice listing.
func (e *Exporter) RenderSummaryPDF(ctx context.Context, summary *entity.DailySummary) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := e.newDocument("Daily summary - " + summary.Date.Format(pdfDayLayout))

	if len(summary.Clients) == 0 {
		pdf.SetFont(pdfFont, "", 11)
		pdf.cell(0, lineHeight, "No orders for this day.", "", 1, "L", false)
		return output(pdf)
	}

	for _, client := range summary.Clients {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.cell(0, lineHeight+1, fmt.Sprintf("%s (%s orders)", client.ClientName, e.format.Count(client.OrderCount)), "", 1, "L", false)

		tableHeader(pdf, lineColumns)
		pdf.SetFont(pdfFont, "", 9)
		for _, line := range client.Lines {
			product := line.ProductName
			if len(line.Options) > 0 {
				product += " (" + strings.Join(line.Options, ", ") + ")"
			}
			tableRow(pdf, lineColumns, []string{
				line.OrderNumber,
				truncate(product, 44),
				e.format.Count(line.Quantity),
				e.format.Money(line.UnitPrice),
				e.format.Money(line.LineTotal),
			})
		}

		totalRow(pdf, "Subtotal", e.format.Money(client.Subtotal), false)
		totalRow(pdf, "Tax", e.format.Money(client.Tax), false)
		totalRow(pdf, "Total", e.format.Money(client.Total), true)
		pdf.Ln(4)
	}

	pdf.SetFont(pdfFont, "B", 12)
	pdf.cell(0, lineHeight+1, "Production totals", "", 1, "L", false)
	pdf.SetFont(pdfFont, "", 10)
	for _, p := range summary.ProductTotals {
		pdf.cell(120, lineHeight-1, p.ProductName, "", 0, "L", false)
		pdf.cell(40, lineHeight-1, e.format.Count(p.Quantity), "", 1, "R", false)
	}

	pdf.Ln(4)
	totalRow(pdf, fmt.Sprintf("Grand total (%s orders)", e.format.Count(summary.OrderCount)), e.format.Money(summary.GrandTotal), true)

	return output(pdf)
}

// document wraps a gofpdf document whose core fonts only cover cp1252.
type document struct {
	*gofpdf.Fpdf
	tr func(string) string
}

// cell writes UTF-8 text translated to the core font encoding.
// Runes outside cp1252 render as '.'.
func (d *document) cell(w, h float64, text, border string, ln int, align string, fill bool) {
	d.CellFormat(w, h, d.tr(text), border, ln, align, fill, 0, "")
}

func (e *Exporter) newDocument(title string) *document {
	f := gofpdf.New("P", "mm", "A4", "")
	pdf := &document{Fpdf: f, tr: f.UnicodeTranslatorFromDescriptor("")}
	pdf.SetTitle(title, true)
	pdf.SetAuthor(e.companyName, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.cell(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false)
	})
	pdf.AddPage()

	if e.companyName != "" {
		pdf.SetFont(pdfFont, "", 10)
		pdf.cell(0, 6, e.companyName, "", 1, "L", false)
	}
	pdf.SetFont(pdfFont, "B", 16)
	pdf.cell(0, 10, title, "", 1, "L", false)
	return pdf
}

func tableHeader(pdf *document, cols []column) {
	pdf.SetFont(pdfFont, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.cell(c.width, lineHeight, c.title, "1", 0, c.align, true)
	}
	pdf.Ln(-1)
}

func tableRow(pdf *document, cols []column, values []string) {
	for i, c := range cols {
		pdf.cell(c.width, lineHeight-1, values[i], "1", 0, c.align, false)
	}
	pdf.Ln(-1)
}

func totalRow(pdf *document, label, value string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont(pdfFont, style, 10)
	pdf.cell(160, lineHeight-1, label, "", 0, "R", false)
	pdf.cell(30, lineHeight-1, value, "", 1, "R", false)
}

func output(pdf *document) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
