package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// SetProductActiveInput represents the input for enabling or disabling a product.
type SetProductActiveInput struct {
	ProductID uuid.UUID
	Active    bool
}

// SetProductActiveUseCase toggles whether a product can be ordered.
type SetProductActiveUseCase struct {
	productRepo adapter.ProductRepository
}

// NewSetProductActiveUseCase creates a new SetProductActiveUseCase instance.
func NewSetProductActiveUseCase(productRepo adapter.ProductRepository) *SetProductActiveUseCase {
	return &SetProductActiveUseCase{
		productRepo: productRepo,
	}
}

// Execute stores the new active flag.
func (uc *SetProductActiveUseCase) Execute(ctx context.Context, input SetProductActiveInput) (*entity.Product, error) {
	product, err := uc.productRepo.FindByID(ctx, input.ProductID)
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

	if product.Active == input.Active {
		return product, nil
	}

	product.Active = input.Active
	product.UpdatedAt = time.Now().UTC()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
