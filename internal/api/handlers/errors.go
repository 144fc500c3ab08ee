package handlers

import (
	"errors"
	"net/http"

	"revenue-model/internal/api/models"
	"revenue-model/internal/model"

	"github.com/gin-gonic/gin"
)

// ErrorDetail maps a domain error onto an HTTP status and API error code.
func ErrorDetail(err error) (int, models.ErrorDetail) {
	detail := models.ErrorDetail{Message: err.Error()}
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		detail.Code = "NOT_FOUND"
	case errors.Is(err, model.ErrConfiguration):
		detail.Code = "UNKNOWN_CURRENCY"
	case errors.Is(err, model.ErrInvalidUnit):
		detail.Code = "INVALID_UNIT"
	case errors.Is(err, model.ErrInvalidRequest):
		detail.Code = "INVALID_REQUEST"
	default:
		status = http.StatusInternalServerError
		detail.Code = "INTERNAL_ERROR"
	}

	var fe *model.FieldError
	if errors.As(err, &fe) {
		detail.Details = map[string]interface{}{"field": fe.Field}
	}
	return status, detail
}

func writeError(c *gin.Context, err error) {
	status, detail := ErrorDetail(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, models.ErrorResponse{Error: detail})
}

// badRequest reports a request that failed JSON or query binding.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}
