// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/catering-ops/backend/internal/application/adapter"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/persistence/model"
)

// orderRepository implements the adapter.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance.
func NewOrderRepository(db *gorm.DB) adapter.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create inserts the order and its items in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := model.OrderFromEntity(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(orderModel).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerror.ErrOrderNumberTaken
			}
			return err
		}
		if len(orderModel.Items) > 0 {
			if err := tx.Create(&orderModel.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves an order with its items.
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderModel model.OrderModel
	result := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&orderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOrderNotFound
		}
		return nil, result.Error
	}
	return orderModel.ToEntity(), nil
}

// FetchOrders returns every order matching the query, oldest first.
// Range bounds are compared in UTC, the unit created_at is stored in.
func (r *orderRepository) FetchOrders(ctx context.Context, q adapter.OrderQuery) ([]*entity.Order, error) {
	query := r.db.WithContext(ctx).Model(&model.OrderModel{})

	if q.Range != nil {
		query = query.Where("created_at >= ? AND created_at < ?", q.Range.Start.UTC(), q.Range.EndExclusive().UTC())
	}
	if q.DeliveryDate != nil {
		day := model.CivilDate(*q.DeliveryDate)
		query = query.Where("delivery_date >= ? AND delivery_date < ?", day, day.AddDate(0, 0, 1))
	}
	query = applyScope(query, q.Status, q.ClientID, q.DistributorID)

	var orderModels []model.OrderModel
	if err := query.Preload("Items").Order("created_at ASC").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToEntity()
	}
	return orders, nil
}

// List retrieves a page of orders by delivery date, newest first.
func (r *orderRepository) List(ctx context.Context, filter adapter.OrderListFilter) (*entity.OrderListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.OrderModel{})

	if filter.StartDate != nil {
		query = query.Where("delivery_date >= ?", model.CivilDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("delivery_date < ?", model.CivilDate(*filter.EndDate).AddDate(0, 0, 1))
	}
	query = applyScope(query, filter.Status, filter.ClientID, filter.DistributorID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var orderModels []model.OrderModel
	result := query.
		Preload("Items").
		Order("delivery_date DESC, created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&orderModels)
	if result.Error != nil {
		return nil, result.Error
	}

	orders := make([]*entity.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToEntity()
	}

	return &entity.OrderListResult{
		Orders: orders,
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}, nil
}

// UpdateStatus sets the delivery status of an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DeliveryStatus, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivery_status": string(status),
			"updated_at":      updatedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrOrderNotFound
	}
	return nil
}

// NextOrderNumber returns ORD-YYYYMMDD-NNNN, numbered per UTC day.
// Concurrent callers may get the same number; the unique index rejects the loser.
func (r *orderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("ORD-%s-", time.Now().UTC().Format("20060102"))

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_number LIKE ?", prefix+"%").
		Count(&count)
	if result.Error != nil {
		return "", result.Error
	}

	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// applyScope narrows an order query by status and ownership.
func applyScope(query *gorm.DB, status *entity.DeliveryStatus, clientID, distributorID *uuid.UUID) *gorm.DB {
	if status != nil {
		query = query.Where("delivery_status = ?", string(*status))
	}
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}
	if distributorID != nil {
		query = query.Where("distributor_id = ?", *distributorID)
	}
	return query
}
