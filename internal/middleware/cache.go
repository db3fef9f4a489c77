package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheControl marks successful GET responses as publicly cacheable for maxAge
// seconds. Error responses and every other method get no-store.
func CacheControl(maxAge int) gin.HandlerFunc {
	value := "public, max-age=" + strconv.Itoa(maxAge)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || maxAge <= 0 {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Writer = &cacheWriter{ResponseWriter: c.Writer, value: value}
		c.Next()
	}
}

// cacheWriter picks the Cache-Control value from the status the handler settles on.
type cacheWriter struct {
	gin.ResponseWriter
	value string
}

func (w *cacheWriter) decide(code int) {
	if w.Written() {
		return
	}
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		w.Header().Set("Cache-Control", w.value)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
}

func (w *cacheWriter) WriteHeader(code int) {
	w.decide(code)
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) WriteHeaderNow() {
	w.decide(w.Status())
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.decide(w.Status())
	return w.ResponseWriter.Write(data)
}

func (w *cacheWriter) WriteString(s string) (int, error) {
	w.decide(w.Status())
	return w.ResponseWriter.WriteString(s)
}
