package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// GetProductUseCase loads one product.
type GetProductUseCase struct {
	productRepo adapter.ProductRepository
}

// NewGetProductUseCase creates a new GetProductUseCase instance.
func NewGetProductUseCase(productRepo adapter.ProductRepository) *GetProductUseCase {
	return &GetProductUseCase{
		productRepo: productRepo,
	}
}

// Execute loads the product with the given id.
func (uc *GetProductUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrProductNotFound) {
			return nil, domainerror.NewProductError(
				domainerror.ErrCodeProductNotFound,
				"product not found",
				domainerror.ErrProductNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}
