package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// Report kinds, used to scope selections and cached summaries.
const (
	KindOrdersSummary = "orders_summary"
	KindFinancials    = "financials"
)

// SelectionScope identifies the stream of selections one user makes on one report.
func SelectionScope(userID uuid.UUID, kind string) string {
	return kind + ":" + userID.String()
}

// SelectionGuard discards results of selections that a newer one superseded.
type SelectionGuard struct {
	sequencer adapter.RequestSequencer
}

// NewSelectionGuard creates a new SelectionGuard instance.
func NewSelectionGuard(sequencer adapter.RequestSequencer) *SelectionGuard {
	return &SelectionGuard{
		sequencer: sequencer,
	}
}

// Begin registers a new selection for scope and returns its token.
func (g *SelectionGuard) Begin(ctx context.Context, scope string) (uint64, error) {
	token, err := g.sequencer.Next(ctx, scope)
	if err != nil {
		return 0, fmt.Errorf("failed to issue selection token: %w", err)
	}
	return token, nil
}

// Verify returns a stale response error when token is no longer the latest for scope.
func (g *SelectionGuard) Verify(ctx context.Context, scope string, token uint64) error {
	latest, err := g.sequencer.Latest(ctx, scope)
	if err != nil {
		return fmt.Errorf("failed to read latest selection token: %w", err)
	}
	if latest != token {
		return domainerror.NewStaleResponseError()
	}
	return nil
}

// guardedFetch loads orders for one selection.
// A superseded selection yields a stale response even when its fetch failed.
func guardedFetch(
	ctx context.Context,
	guard *SelectionGuard,
	source adapter.OrderSource,
	scope string,
	query adapter.OrderQuery,
) ([]*entity.Order, error) {
	token, err := guard.Begin(ctx, scope)
	if err != nil {
		return nil, err
	}

	orders, fetchErr := source.FetchOrders(ctx, query)

	if err := guard.Verify(ctx, scope, token); err != nil {
		slog.Debug("Discarding superseded selection", "scope", scope, "token", token)
		return nil, err
	}

	if fetchErr != nil {
		slog.Warn("Failed to fetch orders", "scope", scope, "error", fetchErr)
		return nil, domainerror.NewFetchError(fetchErr)
	}

	return orders, nil
}
