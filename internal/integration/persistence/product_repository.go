// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/persistence/model"
)

// productRepository implements the adapter.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) adapter.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create creates a new product in the database.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(model.ProductFromEntity(product))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.NewProductError(
				domainerror.ErrCodeSKUExists,
				"a product with this sku already exists",
				domainerror.ErrSKUExists,
			)
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a product by its ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productModel model.ProductModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProductNotFound
		}
		return nil, result.Error
	}
	return productModel.ToEntity(), nil
}

// FindByIDs retrieves the products with the given IDs, keyed by ID.
// Unknown IDs are simply absent from the result.
func (r *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Product, error) {
	products := make(map[uuid.UUID]*entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	var productModels []model.ProductModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&productModels)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range productModels {
		p := productModels[i].ToEntity()
		products[p.ID] = p
	}
	return products, nil
}

// List retrieves products matching the filter, ordered by name.
func (r *productRepository) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.ProductModel{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var productModels []model.ProductModel
	if err := query.Order("name ASC").Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]*entity.Product, len(productModels))
	for i := range productModels {
		products[i] = productModels[i].ToEntity()
	}
	return products, nil
}

// Update updates an existing product in the database.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(model.ProductFromEntity(product)).Error
}

// ExistsBySKU checks if a product with the given SKU exists.
func (r *productRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.ProductModel{}).Where("sku = ?", sku).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
