package httputil

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kabz8/Nextcare/pkg/errors"
	"github.com/kabz8/Nextcare/pkg/logger"
	"github.com/kabz8/Nextcare/pkg/validator"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  "error",
		Message: message,
	}
}

// RespondWithError writes err as a JSON error. Application errors keep their status
// and message, anything else becomes an opaque 500.
func RespondWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr, ok := errors.As(err)
	if !ok {
		logger.ErrorWithStack(err, "request failed")
		appErr = errors.NewInternal(err)
	}
	c.AbortWithStatusJSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}

// RespondBindError reports a request body or query that failed binding. A body cut
// off by http.MaxBytesReader is a 413, not a validation failure.
func RespondBindError(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, NewErrorResponse("request body too large"))
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(validator.Message(err)))
}

func RespondBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(message))
}

// ParamID reads a positive integer path parameter. It responds with 400 and
// returns false when the value is malformed.
func ParamID(c *gin.Context, name, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondBadRequest(c, "invalid "+resource+" ID")
		return 0, false
	}
	return id, true
}
