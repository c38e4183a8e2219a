package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"young-ats/internal/delivery/http/response"
	"young-ats/pkg/apperror"
	"young-ats/pkg/logger"
	"young-ats/pkg/validation"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Errorw("request failed",
					"path", c.FullPath(),
					"request_id", c.GetString(response.RequestIDKey),
					"error", appErr.Err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.As(err, &validationErrs):
			response.Error(c, http.StatusBadRequest, validation.Message(err), validation.FormatValidationErrors(err))
		default:
			// Never expose internal error details to clients
			logger.Log.Errorw("unhandled error",
				"path", c.FullPath(),
				"request_id", c.GetString(response.RequestIDKey),
				"error", err,
			)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
