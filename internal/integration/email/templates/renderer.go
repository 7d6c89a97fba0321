// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// Template names, without extension.
const (
	TemplateDailySummary = "daily_summary"
)

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data interface{}) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", templateName, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// DailySummaryData contains data for the daily summary email template.
// Amounts are preformatted.
type DailySummaryData struct {
	CompanyName   string
	DateLabel     string
	OrderCount    string
	GrandTotal    string
	Clients       []ClientSummaryData
	ProductTotals []ProductTotalData
}

// ClientSummaryData is one client's block in the daily summary.
type ClientSummaryData struct {
	Name       string
	OrderCount string
	Lines      []SummaryLineData
	Subtotal   string
	Tax        string
	Total      string
}

// SummaryLineData is one product line in the daily summary.
type SummaryLineData struct {
	OrderNumber string
	Product     string
	Options     string
	Quantity    string
	UnitPrice   string
	LineTotal   string
}

// ProductTotalData is a production total in the daily summary.
type ProductTotalData struct {
	Product  string
	Quantity string
}
