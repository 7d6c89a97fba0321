package report

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// GetDailySummaryInput represents the input for a day's summary.
// An empty Date means today.
type GetDailySummaryInput struct {
	Date          string
	ClientID      *uuid.UUID
	DistributorID *uuid.UUID
	AuthToken     string
}

// GetDailySummaryUseCase builds the invoice-style summary of one delivery day.
type GetDailySummaryUseCase struct {
	source adapter.OrderSource
	clock  Clock
}

// NewGetDailySummaryUseCase creates a new GetDailySummaryUseCase instance.
func NewGetDailySummaryUseCase(source adapter.OrderSource, clock Clock) *GetDailySummaryUseCase {
	return &GetDailySummaryUseCase{
		source: source,
		clock:  clock,
	}
}

// Execute fetches the orders delivered on the day and summarizes them.
func (uc *GetDailySummaryUseCase) Execute(ctx context.Context, input GetDailySummaryInput) (*entity.DailySummary, error) {
	day, err := uc.resolveDay(input.Date)
	if err != nil {
		return nil, err
	}

	orders, err := uc.source.FetchOrders(ctx, adapter.OrderQuery{
		DeliveryDate:  &day,
		ClientID:      input.ClientID,
		DistributorID: input.DistributorID,
		AuthToken:     input.AuthToken,
	})
	if err != nil {
		return nil, domainerror.NewFetchError(err)
	}

	return BuildDailySummary(day, orders), nil
}

// resolveDay parses the requested day in the report time zone.
func (uc *GetDailySummaryUseCase) resolveDay(raw string) (time.Time, error) {
	now := uc.clock()
	if strings.TrimSpace(raw) == "" {
		return StartOfDay(now), nil
	}

	day, err := ParseDay(strings.TrimSpace(raw), now.Location())
	if err != nil {
		return time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateFormat,
			"date must be formatted as YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	return day, nil
}

// BuildDailySummary groups the non-cancelled orders of a day by client.
// Clients are sorted by name, product totals by quantity then name.
func BuildDailySummary(day time.Time, orders []*entity.Order) *entity.DailySummary {
	summary := &entity.DailySummary{
		Date:          StartOfDay(day),
		Clients:       []entity.ClientSummary{},
		ProductTotals: []entity.ProductTotal{},
		GrandTotal:    decimal.Zero,
	}

	byClient := make(map[uuid.UUID]*entity.ClientSummary)
	byProduct := make(map[string]int)

	for _, o := range orders {
		if o == nil || o.DeliveryStatus == entity.DeliveryStatusCancelled {
			continue
		}

		client, ok := byClient[o.ClientID]
		if !ok {
			client = &entity.ClientSummary{
				ClientID:   o.ClientID,
				ClientName: o.ClientName,
				Subtotal:   decimal.Zero,
				Tax:        decimal.Zero,
				Total:      decimal.Zero,
			}
			byClient[o.ClientID] = client
		}

		for _, item := range o.Items {
			client.Lines = append(client.Lines, entity.SummaryLine{
				OrderNumber: o.OrderNumber,
				ProductName: item.ProductName,
				Options:     item.Options,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				LineTotal:   item.LineTotal,
			})
			byProduct[item.ProductName] += item.Quantity
		}

		client.OrderCount++
		client.Subtotal = client.Subtotal.Add(o.Subtotal)
		client.Tax = client.Tax.Add(o.Tax)
		client.Total = client.Total.Add(o.Total)

		summary.OrderCount++
		summary.GrandTotal = summary.GrandTotal.Add(o.Total)
	}

	for _, client := range byClient {
		summary.Clients = append(summary.Clients, *client)
	}
	sort.Slice(summary.Clients, func(i, j int) bool {
		if summary.Clients[i].ClientName != summary.Clients[j].ClientName {
			return summary.Clients[i].ClientName < summary.Clients[j].ClientName
		}
		return summary.Clients[i].ClientID.String() < summary.Clients[j].ClientID.String()
	})

	for name, qty := range byProduct {
		summary.ProductTotals = append(summary.ProductTotals, entity.ProductTotal{ProductName: name, Quantity: qty})
	}
	sort.Slice(summary.ProductTotals, func(i, j int) bool {
		a, b := summary.ProductTotals[i], summary.ProductTotals[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.ProductName < b.ProductName
	})

	return summary
}
