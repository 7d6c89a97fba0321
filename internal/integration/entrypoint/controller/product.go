package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/catering-ops/backend/internal/application/usecase/product"
	"github.com/catering-ops/backend/internal/domain/entity"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
	"github.com/catering-ops/backend/internal/integration/entrypoint/middleware"
)

// ProductController handles product catalog endpoints.
type ProductController struct {
	listUseCase      *product.ListProductsUseCase
	getUseCase       *product.GetProductUseCase
	createUseCase    *product.CreateProductUseCase
	setActiveUseCase *product.SetProductActiveUseCase
}

// NewProductController creates a new product controller instance.
func NewProductController(
	listUseCase *product.ListProductsUseCase,
	getUseCase *product.GetProductUseCase,
	createUseCase *product.CreateProductUseCase,
	setActiveUseCase *product.SetProductActiveUseCase,
) *ProductController {
	return &ProductController{
		listUseCase:      listUseCase,
		getUseCase:       getUseCase,
		createUseCase:    createUseCase,
		setActiveUseCase: setActiveUseCase,
	}
}

// List handles GET /products requests.
func (c *ProductController) List(ctx *gin.Context) {
	var query dto.ListProductsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidQueryParams), err)
		return
	}

	filter := entity.ProductFilter{
		Search:   query.Search,
		Category: query.Category,
		Active:   query.Active,
	}
	// Only admins see inactive products.
	if role, _ := middleware.GetRoleFromContext(ctx); role != entity.RoleAdmin {
		active := true
		filter.Active = &active
	}

	products, err := c.listUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products))
}

// Get handles GET /products/:id requests.
func (c *ProductController) Get(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id")
	if !ok {
		return
	}

	p, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Create handles POST /products requests.
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidRequestBody), err)
		return
	}

	p, err := c.createUseCase.Execute(ctx.Request.Context(), product.CreateProductInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		BasePrice:    req.BasePrice,
		Tags:         req.Tags,
		OptionGroups: req.ToOptionGroups(),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// SetStatus handles PATCH /products/:id/status requests.
func (c *ProductController) SetStatus(ctx *gin.Context) {
	id, ok := pathUUID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SetProductStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidRequestBody), err)
		return
	}

	p, err := c.setActiveUseCase.Execute(ctx.Request.Context(), product.SetProductActiveInput{
		ProductID: id,
		Active:    *req.Active,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// pathUUID parses a UUID path parameter, answering 400 when it is malformed.
func pathUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name,
			Code:  string(domainerror.ErrCodeInvalidPathParam),
		})
		return uuid.Nil, false
	}
	return id, true
}
