package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
)

// ListProductsUseCase handles searching the catalog.
type ListProductsUseCase struct {
	productRepo adapter.ProductRepository
}

// NewListProductsUseCase creates a new ListProductsUseCase instance.
func NewListProductsUseCase(productRepo adapter.ProductRepository) *ListProductsUseCase {
	return &ListProductsUseCase{
		productRepo: productRepo,
	}
}

// Execute lists products matching the filter.
func (uc *ListProductsUseCase) Execute(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.ToLower(strings.TrimSpace(filter.Category))

	products, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
