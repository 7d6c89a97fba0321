// Package product contains product catalog use cases.
package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
)

// maxPriceMultiplier caps how much a single option may scale the base price.
var maxPriceMultiplier = decimal.NewFromInt(10)

// CreateProductInput represents the input for creating a product.
type CreateProductInput struct {
	SKU          string
	Name         string
	Description  string
	Category     string
	BasePrice    decimal.Decimal
	Tags         []string
	OptionGroups []entity.OptionGroup
}

// CreateProductUseCase handles product creation logic.
type CreateProductUseCase struct {
	productRepo adapter.ProductRepository
}

// NewCreateProductUseCase creates a new CreateProductUseCase instance.
func NewCreateProductUseCase(productRepo adapter.ProductRepository) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo: productRepo,
	}
}

// Execute validates and stores the product.
func (uc *CreateProductUseCase) Execute(ctx context.Context, input CreateProductInput) (*entity.Product, error) {
	input.SKU = strings.ToUpper(strings.TrimSpace(input.SKU))
	input.Name = strings.TrimSpace(input.Name)

	if err := validateProduct(input); err != nil {
		return nil, err
	}

	exists, err := uc.productRepo.ExistsBySKU(ctx, input.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check sku existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewProductError(
			domainerror.ErrCodeSKUExists,
			fmt.Sprintf("a product with sku %s already exists", input.SKU),
			domainerror.ErrSKUExists,
		)
	}

	product := entity.NewProduct(
		input.SKU,
		input.Name,
		strings.TrimSpace(input.Description),
		strings.ToLower(strings.TrimSpace(input.Category)),
		input.BasePrice,
		normalizeTags(input.Tags),
		input.OptionGroups,
	)

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// validateProduct checks required fields, price and option groups.
func validateProduct(input CreateProductInput) error {
	if input.SKU == "" || input.Name == "" {
		return domainerror.NewProductError(
			domainerror.ErrCodeMissingProductFields,
			"sku and name are required",
			nil,
		)
	}

	if input.BasePrice.IsNegative() {
		return domainerror.NewProductError(
			domainerror.ErrCodeInvalidPrice,
			"base_price must not be negative",
			domainerror.ErrInvalidPrice,
		)
	}

	groupNames := make(map[string]bool, len(input.OptionGroups))
	for _, g := range input.OptionGroups {
		if err := validateOptionGroup(g); err != nil {
			return err
		}
		if groupNames[g.Name] {
			return invalidGroup(fmt.Sprintf("option group %q is defined twice", g.Name))
		}
		groupNames[g.Name] = true
	}

	return nil
}

func validateOptionGroup(g entity.OptionGroup) error {
	if strings.TrimSpace(g.Name) == "" {
		return invalidGroup("option group name is required")
	}
	if len(g.Options) == 0 {
		return invalidGroup(fmt.Sprintf("option group %q has no options", g.Name))
	}
	if g.MinSelect < 0 || g.MaxSelect < 0 {
		return invalidGroup(fmt.Sprintf("option group %q has a negative selection limit", g.Name))
	}
	if g.MaxSelect > 0 && g.MinSelect > g.MaxSelect {
		return invalidGroup(fmt.Sprintf("option group %q requires more options than it allows", g.Name))
	}
	if g.MinSelect > len(g.Options) {
		return invalidGroup(fmt.Sprintf("option group %q requires more options than it has", g.Name))
	}

	names := make(map[string]bool, len(g.Options))
	for _, o := range g.Options {
		if strings.TrimSpace(o.Name) == "" || names[o.Name] {
			return invalidGroup(fmt.Sprintf("option group %q has a blank or duplicate option", g.Name))
		}
		names[o.Name] = true

		if !o.PriceMultiplier.IsPositive() || o.PriceMultiplier.GreaterThan(maxPriceMultiplier) {
			return domainerror.NewProductError(
				domainerror.ErrCodeInvalidPriceMultiplier,
				fmt.Sprintf("price multiplier of %q must be greater than 0 and at most %s", o.Name, maxPriceMultiplier),
				domainerror.ErrInvalidPriceMultiplier,
			)
		}
	}

	return nil
}

func invalidGroup(message string) error {
	return domainerror.NewProductError(
		domainerror.ErrCodeInvalidOptionGroup,
		message,
		domainerror.ErrInvalidOptionGroup,
	)
}

// normalizeTags lowercases tags and drops blanks and duplicates.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
