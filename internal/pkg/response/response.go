package response

import (
	"errors"
	"net/http"
	"time"

	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Envelope is the standard success payload: {data, timestamp}, with an
// optional count for list endpoints that report one.
type Envelope struct {
	Count     *int        `json:"count,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Data sends a success response wrapping data with the current UTC time.
func Data(c *gin.Context, status int, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Data: data, Timestamp: time.Now().UTC()})
}

// List sends a success response that includes the element count.
func List(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Count: &count, Data: data, Timestamp: time.Now().UTC()})
}

// NoContent sends an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends a standardized error body {error: message}.
func Error(c *gin.Context, status int, message string) {
	c.Abort()
	c.JSON(status, gin.H{"error": message})
}

// FromError maps a kinded service error to its HTTP status. Unknown errors
// become a generic 500 so no internal detail leaks to the caller.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, xerrors.ErrBadRequest):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, xerrors.ErrInternal):
		Error(c, http.StatusInternalServerError, err.Error())
	default:
		Error(c, http.StatusInternalServerError, "Error interno del servidor.")
	}
}
