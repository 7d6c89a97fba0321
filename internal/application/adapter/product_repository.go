// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create creates a new product in the database.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products with the given IDs, keyed by ID.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error)

	// List retrieves products matching the filter, ordered by name.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// Update updates an existing product in the database.
	Update(ctx context.Context, product *entity.Product) error

	// ExistsBySKU checks if a product with the given SKU exists.
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
