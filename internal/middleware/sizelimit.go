package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kabz8/Nextcare/pkg/httputil"
)

// SizeLimit rejects bodies larger than maxBytes, both by Content-Length and while reading.
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.NewErrorResponse("request body too large"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
