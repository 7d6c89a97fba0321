// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// RequestSequencer hands out monotonically increasing tokens per scope.
// A request whose token no longer equals Latest has been superseded.
type RequestSequencer interface {
	// Next issues a new token for the scope and makes it the latest.
	Next(ctx context.Context, scope string) (uint64, error)

	// Latest returns the most recently issued token for the scope, 0 if none.
	Latest(ctx context.Context, scope string) (uint64, error)
}
