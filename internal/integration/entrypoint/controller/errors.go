package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses.
// Anything unrecognized is logged and reported as a 500.
func handleError(ctx *gin.Context, err error) {
	var (
		authErr    *domainerror.AuthError
		orderErr   *domainerror.OrderError
		productErr *domainerror.ProductError
		reportErr  *domainerror.ReportError
		emailErr   *domainerror.EmailError
	)

	switch {
	case errors.As(err, &reportErr):
		if reportErr.Code == domainerror.ErrCodeFetchFailed {
			slog.Error("Order fetch failed", "path", ctx.FullPath(), "error", reportErr.Err)
		}
		respond(ctx, reportStatus(reportErr.Code), reportErr.Message, string(reportErr.Code))
	case errors.As(err, &orderErr):
		respond(ctx, orderStatus(orderErr.Code), orderErr.Message, string(orderErr.Code))
	case errors.As(err, &productErr):
		respond(ctx, productStatus(productErr.Code), productErr.Message, string(productErr.Code))
	case errors.As(err, &authErr):
		respond(ctx, authStatus(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &emailErr):
		slog.Error("Summary email failed", "path", ctx.FullPath(), "error", emailErr.Err)
		respond(ctx, emailStatus(emailErr.Code), emailErr.Message, string(emailErr.Code))
	default:
		slog.Error("Unhandled error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func respond(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// badRequest reports a request that failed binding.
func badRequest(ctx *gin.Context, code string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    code,
		Details: err.Error(),
	})
}

func reportStatus(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidExportFormat,
		domainerror.ErrCodeMissingRecipient:
		return http.StatusBadRequest
	case domainerror.ErrCodeFetchFailed:
		return http.StatusBadGateway
	case domainerror.ErrCodeStaleResponse:
		return http.StatusConflict
	case domainerror.ErrCodeSummaryNotCached:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func orderStatus(code domainerror.OrderErrorCode) int {
	switch code {
	case domainerror.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidStatusTransition, domainerror.ErrCodeOrderNumberTaken:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func productStatus(code domainerror.ProductErrorCode) int {
	switch code {
	case domainerror.ErrCodeProductNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSKUExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidRole,
		domainerror.ErrCodeInvalidEmail:
		return http.StatusBadRequest
	case domainerror.ErrCodeForbiddenRole:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusUnauthorized
	}
}

func emailStatus(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodePermanentEmailFailure:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeTemplateRenderFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
