package middleware

import (
	"bookhive/internal/http-api/apperr"

	"github.com/gin-gonic/gin"
)

// abortWithError resolves err through the apperr taxonomy and aborts the
// request, so middleware responses stay in shape with the handlers.
func abortWithError(c *gin.Context, err error) {
	status, message := apperr.StatusAndMessage(err)
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
