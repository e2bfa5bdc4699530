package middleware

import (
	"user_portal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware checks that the session user is an admin. SessionMiddleware must run first.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := CurrentUser(c)
		if err := service.RequireAdmin(user); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}
