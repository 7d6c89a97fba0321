package export

import (
	"time"

	"github.com/catering-ops/backend/internal/application/adapter"
)

// Config holds document settings.
type Config struct {
	CompanyName    string
	Locale         string
	CurrencySymbol string
	Location       *time.Location
}

// Exporter implements adapter.OrderExporter and renders daily summary PDFs.
type Exporter struct {
	companyName string
	format      *Formatter
	location    *time.Location
}

// NewExporter creates a new document exporter.
func NewExporter(cfg Config) *Exporter {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{
		companyName: cfg.CompanyName,
		format:      NewFormatter(cfg.Locale, cfg.CurrencySymbol),
		location:    loc,
	}
}

var _ adapter.OrderExporter = (*Exporter)(nil)
