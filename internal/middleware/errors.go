package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tracepulse/internal/domain/dto"
)

// ErrorHandler converts errors recorded on the context via c.Error
// into a standardized JSON response. It only acts when the handler
// chain finished without writing a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.JSON(status, dto.NewErrorResponse("request failed", c.Errors.Last().Err))
}

// AbortWithError stops request processing with the given status and a
// standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
