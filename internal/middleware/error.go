package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kabz8/Nextcare/pkg/errors"
	"github.com/kabz8/Nextcare/pkg/httputil"
)

// ErrorHandler logs errors attached to the context. Handlers normally write the
// response themselves; when one did not, the last error is rendered here.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			event := log.Debug()
			if !e.IsType(gin.ErrorTypeBind) {
				if _, ok := errors.As(e.Err); !ok {
					event = log.Error()
				}
			}
			event.
				Err(e.Err).
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last().Err
		appErr, ok := errors.As(lastErr)
		if !ok {
			appErr = errors.NewInternal(lastErr)
		}
		c.JSON(appErr.StatusCode(), httputil.NewErrorResponse(appErr.Message))
	}
}
