package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fstr/pereval/internal/app/models/dto"
	"github.com/fstr/pereval/internal/pkg/apperrors"
	"github.com/fstr/pereval/internal/pkg/logger"
)

// HandleAPIError maps application errors to the status-shaped legacy
// envelope used by the create, fetch and search endpoints. The update
// endpoint has its own state-flag envelope and does not go through here.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		resp := dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Message: validationMessage(err),
		}
		if details := apperrors.Details(err); details != nil {
			resp.Data = details
		}
		c.JSON(http.StatusBadRequest, resp)

	case errors.Is(err, apperrors.ErrPerevalNotFound):
		c.JSON(http.StatusNotFound, dto.DataResponse{
			Status:  http.StatusNotFound,
			Message: "Pass not found",
			Data:    nil,
		})

	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Status:  http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func validationMessage(err error) string {
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return "Validation failed"
}
