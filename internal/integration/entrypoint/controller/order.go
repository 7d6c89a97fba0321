package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/usecase/order"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
)

const dateLayout = "2006-01-02"

// OrderController handles order endpoints.
type OrderController struct {
	listUseCase         *order.ListOrdersUseCase
	getUseCase          *order.GetOrderUseCase
	createUseCase       *order.CreateOrderUseCase
	updateStatusUseCase *order.UpdateOrderStatusUseCase
}

// NewOrderController creates a new order controller instance.
func NewOrderController(
	listUseCase *order.ListOrdersUseCase,
	getUseCase *order.GetOrderUseCase,
	createUseCase *order.CreateOrderUseCase,
	updateStatusUseCase *order.UpdateOrderStatusUseCase,
) *OrderController {
	return &OrderController{
		listUseCase:         listUseCase,
		getUseCase:          getUseCase,
		createUseCase:       createUseCase,
		updateStatusUseCase: updateStatusUseCase,
	}
}

// List handles GET /orders requests.
func (c *OrderController) List(ctx *gin.Context) {
	var query dto.ListOrdersQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidQueryParams), err)
		return
	}

	scope := scopeFromContext(ctx).withClientFilter(query.ClientID)
	input := order.ListOrdersInput{
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
		Page:          query.Page,
		Limit:         query.Limit,
	}
	if query.StartDate != "" {
		start, _ := time.Parse(dateLayout, query.StartDate)
		input.StartDate = &start
	}
	if query.EndDate != "" {
		end, _ := time.Parse(dateLayout, query.EndDate)
		input.EndDate = &end
	}
	if query.Status != "" {
		status := entity.DeliveryStatus(query.Status)
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	orders := make([]dto.OrderResponse, len(output.Orders))
	for i, o := range output.Orders {
		orders[i] = dto.ToOrderResponse(o)
	}

	ctx.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: orders,
		Pagination: dto.PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	})
}

// Get handles GET /orders/:id requests.
func (c *OrderController) Get(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id")
	if !ok {
		return
	}

	scope := scopeFromContext(ctx)
	o, err := c.getUseCase.Execute(ctx.Request.Context(), order.GetOrderInput{
		OrderID:       id,
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Create handles POST /orders requests.
func (c *OrderController) Create(ctx *gin.Context) {
	var req dto.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidRequestBody), err)
		return
	}

	scope := scopeFromContext(ctx)
	deliveryDate, _ := time.Parse(dateLayout, req.DeliveryDate)

	input := order.CreateOrderInput{
		ClientName:    req.ClientName,
		DistributorID: scope.DistributorID,
		DeliveryDate:  deliveryDate,
		Notes:         req.Notes,
	}

	switch {
	case scope.ClientID != nil:
		input.ClientID = *scope.ClientID
	case req.ClientID != "":
		input.ClientID = uuid.MustParse(req.ClientID)
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "client_id is required",
			Code:  string(domainerror.ErrCodeInvalidRequestBody),
		})
		return
	}
	if input.DistributorID == nil && req.DistributorID != "" {
		id := uuid.MustParse(req.DistributorID)
		input.DistributorID = &id
	}

	for _, item := range req.Items {
		in := order.CreateOrderItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
		}
		for _, s := range item.Selections {
			in.Selections = append(in.Selections, order.OptionSelection{
				Group:   s.Group,
				Options: s.Options,
			})
		}
		input.Items = append(input.Items, in)
	}

	o, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToOrderResponse(o))
}

// UpdateStatus handles PATCH /orders/:id/status requests.
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidRequestBody), err)
		return
	}

	o, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), order.UpdateOrderStatusInput{
		OrderID: id,
		Status:  entity.DeliveryStatus(req.Status),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOrderResponse(o))
}
