package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/catering-ops/backend/internal/domain/entity"
)

// OptionSelectionRequest picks options from one option group.
type OptionSelectionRequest struct {
	Group   string   `json:"group" binding:"required"`
	Options []string `json:"options" binding:"required,min=1"`
}

// CreateOrderItemRequest is one product line of a new order.
type CreateOrderItemRequest struct {
	ProductID  string                   `json:"product_id" binding:"required,uuid"`
	Quantity   int                      `json:"quantity" binding:"required,min=1"`
	Selections []OptionSelectionRequest `json:"selections" binding:"dive"`
}

// CreateOrderRequest represents the request body for placing an order.
// ClientID is ignored for client users, who always order for themselves.
type CreateOrderRequest struct {
	ClientID      string                   `json:"client_id" binding:"omitempty,uuid"`
	ClientName    string                   `json:"client_name" binding:"max=200"`
	DistributorID string                   `json:"distributor_id" binding:"omitempty,uuid"`
	DeliveryDate  string                   `json:"delivery_date" binding:"required,datetime=2006-01-02"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes         string                   `json:"notes" binding:"max=1000"`
}

// UpdateOrderStatusRequest represents the request body for changing a delivery status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,delivery_status"`
}

// ListOrdersQuery represents query parameters for listing orders.
type ListOrdersQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status    string `form:"status" binding:"omitempty,delivery_status"`
	ClientID  string `form:"client_id" binding:"omitempty,uuid"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents an order line in API responses.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Options     []string        `json:"options"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID             string              `json:"id"`
	OrderNumber    string              `json:"order_number"`
	ClientID       string              `json:"client_id"`
	ClientName     string              `json:"client_name"`
	DistributorID  *string             `json:"distributor_id"`
	DeliveryDate   string              `json:"delivery_date"`
	DeliveryStatus string              `json:"delivery_status"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	Tax            decimal.Decimal     `json:"tax"`
	Total          decimal.Decimal     `json:"total"`
	Notes          string              `json:"notes"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// PaginationResponse represents pagination information.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// OrderListResponse represents the response for listing orders.
type OrderListResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToOrderResponse converts a domain Order to an OrderResponse.
func ToOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		options := item.Options
		if options == nil {
			options = []string{}
		}
		items[i] = OrderItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Options:     options,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}

	var distributorID *string
	if o.DistributorID != nil {
		id := o.DistributorID.String()
		distributorID = &id
	}

	return OrderResponse{
		ID:             o.ID.String(),
		OrderNumber:    o.OrderNumber,
		ClientID:       o.ClientID.String(),
		ClientName:     o.ClientName,
		DistributorID:  distributorID,
		DeliveryDate:   o.DeliveryDate.UTC().Format("2006-01-02"),
		DeliveryStatus: string(o.DeliveryStatus),
		Items:          items,
		Subtotal:       o.Subtotal,
		Tax:            o.Tax,
		Total:          o.Total,
		Notes:          o.Notes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
