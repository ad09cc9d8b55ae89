package middleware

import (
	"net/http"

	apperrors "rillid/pkg/errors"
	"rillid/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware renders the last error attached with c.Error. AppErrors
// keep their code and status; anything else becomes a 500.
func ErrorHandlerMiddleware(log *zap.Logger) gin.HandlerFunc {
	cl := logger.NewContextLogger(log)

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		ctx := c.Request.Context()
		reqFields := []zap.Field{
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		}

		appErr := apperrors.GetAppError(err)
		if appErr == nil {
			cl.LogError(ctx, err, "unhandled error", reqFields...)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   string(apperrors.ErrCodeInternal),
				"message": "Internal server error",
			})
			return
		}

		fields := append(reqFields,
			zap.String("code", string(appErr.Code)),
			zap.Int("status", appErr.HTTPStatus),
			zap.Any("context", appErr.Context),
		)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			cl.LogError(ctx, appErr.Cause, appErr.Message, fields...)
		} else {
			cl.LogDebug(ctx, appErr.Message, fields...)
		}

		c.JSON(appErr.HTTPStatus, gin.H{
			"error":   string(appErr.Code),
			"message": appErr.Message,
			"details": appErr.Context,
		})
	}
}

// RecoveryMiddleware recovers from panics and returns proper error responses.
// Encoding a stream id panics only on a broken internal invariant, so these are
// logged at error level with the panic value.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	cl := logger.NewContextLogger(log)

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				cl.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   string(apperrors.ErrCodeInternal),
					"message": "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
