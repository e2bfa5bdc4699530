package middleware

import (
	"user_portal/internal/model"
	"user_portal/internal/service"
	"user_portal/internal/utils"

	"github.com/gin-gonic/gin"
)

const AuthUserKey = "authUser"

// SessionMiddleware resolves the session cookie to a user and stores it in the context
func SessionMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A missing cookie yields an empty token, which the service rejects
		token, _ := c.Cookie(utils.SessionCookieName)

		user, err := authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user set by SessionMiddleware
func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	return user, ok && user != nil
}
