package utils

import (
	"net/http"

	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HttpResponse struct {
	Status     bool              `json:"status"`
	Message    string            `json:"message"`
	Body       interface{}       `json:"body,omitempty"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		response.Pagination = &types.Pagination{TotalCount: total[0]}
	}
	return ctx.JSON(code, response)
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := apperrors.StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Do not leak internals to the client.
		logger.Error("unhandled error",
			zap.String("uri", ctx.Request().RequestURI),
			zap.Error(err),
		)
		message = apperrors.ErrInternalServer.Error()
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Message: message,
		Body:    struct{}{},
	})
}
