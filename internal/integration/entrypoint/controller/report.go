package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catering-ops/backend/internal/application/usecase/report"
	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
)

// ReportController handles reporting endpoints.
type ReportController struct {
	ordersSummaryUseCase    *report.GetOrdersSummaryUseCase
	lastSummaryUseCase      *report.GetLastSummaryUseCase
	financialsUseCase       *report.GetFinancialsUseCase
	dailySummaryUseCase     *report.GetDailySummaryUseCase
	exportUseCase           *report.ExportOrdersUseCase
	sendDailySummaryUseCase *report.SendDailySummaryUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	ordersSummaryUseCase *report.GetOrdersSummaryUseCase,
	lastSummaryUseCase *report.GetLastSummaryUseCase,
	financialsUseCase *report.GetFinancialsUseCase,
	dailySummaryUseCase *report.GetDailySummaryUseCase,
	exportUseCase *report.ExportOrdersUseCase,
	sendDailySummaryUseCase *report.SendDailySummaryUseCase,
) *ReportController {
	return &ReportController{
		ordersSummaryUseCase:    ordersSummaryUseCase,
		lastSummaryUseCase:      lastSummaryUseCase,
		financialsUseCase:       financialsUseCase,
		dailySummaryUseCase:     dailySummaryUseCase,
		exportUseCase:           exportUseCase,
		sendDailySummaryUseCase: sendDailySummaryUseCase,
	}
}

// OrdersSummary handles GET /reports/orders/summary requests.
func (c *ReportController) OrdersSummary(ctx *gin.Context) {
	var query dto.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidPeriod), err)
		return
	}

	scope := scopeFromContext(ctx).withClientFilter(query.ClientID)
	output, err := c.ordersSummaryUseCase.Execute(ctx.Request.Context(), report.GetOrdersSummaryInput{
		UserID:        scope.UserID,
		Period:        query.Period,
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
		AuthToken:     scope.AuthToken,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// LastOrdersSummary handles GET /reports/orders/summary/last requests.
func (c *ReportController) LastOrdersSummary(ctx *gin.Context) {
	var query dto.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidPeriod), err)
		return
	}

	scope := scopeFromContext(ctx)
	output, err := c.lastSummaryUseCase.Execute(ctx.Request.Context(), report.GetLastSummaryInput{
		UserID: scope.UserID,
		Period: query.Period,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// Financials handles GET /reports/financials requests.
func (c *ReportController) Financials(ctx *gin.Context) {
	var query dto.ReportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidPeriod), err)
		return
	}

	scope := scopeFromContext(ctx).withClientFilter(query.ClientID)
	output, err := c.financialsUseCase.Execute(ctx.Request.Context(), report.GetFinancialsInput{
		UserID:        scope.UserID,
		Period:        query.Period,
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
		AuthToken:     scope.AuthToken,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// DailySummary handles GET /reports/daily-summary requests.
func (c *ReportController) DailySummary(ctx *gin.Context) {
	var query dto.DailySummaryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidDateFormat), err)
		return
	}

	scope := scopeFromContext(ctx).withClientFilter(query.ClientID)
	summary, err := c.dailySummaryUseCase.Execute(ctx.Request.Context(), report.GetDailySummaryInput{
		Date:          query.Date,
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
		AuthToken:     scope.AuthToken,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// ExportOrders handles GET /reports/orders/export requests.
func (c *ReportController) ExportOrders(ctx *gin.Context) {
	var query dto.ExportQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidQueryParams), err)
		return
	}

	scope := scopeFromContext(ctx).withClientFilter(query.ClientID)
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), report.ExportOrdersInput{
		Period:        query.Period,
		Format:        query.Format,
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
		AuthToken:     scope.AuthToken,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+output.Filename+`"`)
	ctx.Data(http.StatusOK, output.ContentType, output.Content)
}

// SendDailySummary handles POST /reports/daily-summary/send requests.
func (c *ReportController) SendDailySummary(ctx *gin.Context) {
	var req dto.SendDailySummaryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, string(domainerror.ErrCodeInvalidRequestBody), err)
		return
	}

	scope := scopeFromContext(ctx).withClientFilter(req.ClientID)
	output, err := c.sendDailySummaryUseCase.Execute(ctx.Request.Context(), report.SendDailySummaryInput{
		Date:          req.Date,
		Recipient:     req.Recipient,
		RecipientName: req.RecipientName,
		ClientID:      scope.ClientID,
		DistributorID: scope.DistributorID,
		AuthToken:     scope.AuthToken,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, output)
}
