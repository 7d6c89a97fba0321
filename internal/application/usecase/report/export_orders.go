package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// ExportFormat is the file format of an export.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportOrdersInput represents the input for exporting a period's orders.
type ExportOrdersInput struct {
	Period        string
	Format        string
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	AuthToken     string
}

// ExportOrdersOutput is a downloadable file.
type ExportOrdersOutput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportOrdersUseCase exports the orders of a period as CSV or PDF.
type ExportOrdersUseCase struct {
	source   adapter.OrderSource
	exporter adapter.OrderExporter
	clock    Clock
}

// NewExportOrdersUseCase creates a new ExportOrdersUseCase instance.
func NewExportOrdersUseCase(source adapter.OrderSource, exporter adapter.OrderExporter, clock Clock) *ExportOrdersUseCase {
	return &ExportOrdersUseCase{
		source:   source,
		exporter: exporter,
		clock:    clock,
	}
}

// Execute fetches the orders of the period and serializes them.
func (uc *ExportOrdersUseCase) Execute(ctx context.Context, input ExportOrdersInput) (*ExportOrdersOutput, error) {
	period, err := parsePeriod(input.Period)
	if err != nil {
		return nil, err
	}

	format := ExportFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidExportFormat,
			"format must be: csv or pdf",
			domainerror.ErrInvalidExportFormat,
		)
	}

	now := uc.clock()
	dateRange, err := ResolvePeriod(period, now)
	if err != nil {
		return nil, err
	}

	query := adapter.OrderQuery{
		ClientID:      input.ClientID,
		DistributorID: input.DistributorID,
		AuthToken:     input.AuthToken,
	}
	if period != valueobject.PeriodAllTime {
		query.Range = &dateRange
	}

	orders, err := uc.source.FetchOrders(ctx, query)
	if err != nil {
		return nil, domainerror.NewFetchError(err)
	}
	if period != valueobject.PeriodAllTime {
		orders = FilterByRange(orders, dateRange)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	// The PDF header shows the whole history for all_time.
	if period == valueobject.PeriodAllTime {
		for _, o := range orders {
			if !o.CreatedAt.IsZero() {
				if day := StartOfDay(o.CreatedAt.In(now.Location())); day.Before(dateRange.Start) {
					dateRange.Start = day
				}
				break
			}
		}
	}

	filename := fmt.Sprintf("orders-%s-%s.%s", period, DayKey(now), format)

	switch format {
	case ExportFormatPDF:
		content, err := uc.exporter.ExportPDF(ctx, "Orders report", dateRange, orders)
		if err != nil {
			return nil, fmt.Errorf("failed to export orders as pdf: %w", err)
		}
		return &ExportOrdersOutput{Filename: filename, ContentType: "application/pdf", Content: content}, nil
	default:
		content, err := uc.exporter.ExportCSV(ctx, orders)
		if err != nil {
			return nil, fmt.Errorf("failed to export orders as csv: %w", err)
		}
		return &ExportOrdersOutput{Filename: filename, ContentType: "text/csv", Content: content}, nil
	}
}
