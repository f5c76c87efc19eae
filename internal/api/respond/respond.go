package respond

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"artist-portfolio/internal/apperr"
)

// Error writes err as {"error", "code"[, "details"]} and aborts the chain.
// Anything that is not an AppError becomes a 500 with a generic message.
func Error(c *gin.Context, err error) {
	ae := apperr.As(err)
	if ae == nil {
		ae = apperr.Internal(err)
	}
	if ae.Cause != nil {
		_ = c.Error(ae.Cause)
	}

	body := gin.H{"error": ae.Message, "code": ae.Code}
	if len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	c.AbortWithStatusJSON(apperr.Status(ae), body)
}

// BadJSON answers a body that could not be bound.
func BadJSON(c *gin.Context, err error) {
	msg := "Invalid JSON payload"
	if errors.Is(err, io.EOF) {
		msg = "Request body is empty"
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg, "code": apperr.CodeValidation})
}
