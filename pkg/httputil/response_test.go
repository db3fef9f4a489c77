package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kabz8/Nextcare/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, fn gin.HandlerFunc, path string) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()

	r := gin.New()
	r.GET("/items/:id", fn)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body ErrorResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.NewNotFound("appointment", nil), http.StatusNotFound, "appointment not found"},
		{"conflict", apperrors.NewConflict("time slot is no longer available", nil), http.StatusConflict, "time slot is no longer available"},
		{"opaque", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
		{"internal keeps cause private", apperrors.NewInternal(errors.New("pq: connection refused")), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, func(c *gin.Context) { RespondWithError(c, tt.err) }, "/items/1")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestRespondWithError_RecordsCause(t *testing.T) {
	cause := errors.New("pq: connection refused")

	r := gin.New()
	var recorded error
	r.GET("/items/:id", func(c *gin.Context) {
		RespondWithError(c, cause)
		recorded = c.Errors.Last().Err
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.ErrorIs(t, recorded, cause)
}

func TestRespondBindError_TooLarge(t *testing.T) {
	r := gin.New()
	r.POST("/items", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 8)
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			RespondBindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"a long enough value"}`))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "request body too large")
}

func TestParamID(t *testing.T) {
	handler := func(c *gin.Context) {
		id, ok := ParamID(c, "id", "product")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}

	w, _ := perform(t, handler, "/items/12")
	assert.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{"/items/abc", "/items/0", "/items/-3"} {
		w, body := perform(t, handler, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "invalid product ID", body.Message)
	}
}
