package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireStaff aborts with 403 unless the requester holds a staff role
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := GetRequester(c)
		if !ok || !requester.IsStaff() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the requester is an administrator
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := GetRequester(c)
		if !ok || !requester.IsAdmin() {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Insufficient privileges",
		},
	})
}
