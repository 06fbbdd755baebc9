package handler

import (
	"github.com/gin-gonic/gin"

	"bookhive/internal/http-api/apperr"
)

// respondError maps a service error onto the wire. All failure responses share
// the {"message": ...} shape.
func respondError(c *gin.Context, err error) {
	status, message := apperr.StatusAndMessage(err)
	c.JSON(status, gin.H{"message": message})
}

// currentUser pulls the authenticated identity placed in the context by the
// auth middleware. Both values are empty on unauthenticated routes.
func currentUser(c *gin.Context) (userID, role string) {
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		role, _ = v.(string)
	}
	return userID, role
}
