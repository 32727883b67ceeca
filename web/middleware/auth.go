// Package middleware contains the gin middleware of the API: bearer
// token authentication and request tagging.
package middleware

import (
	"strings"

	"reviewhub/database/model"
	"reviewhub/web/entity"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// Auth resolves the Authorization header into the current user. Requests
// without the header pass through anonymously; a present but invalid
// token is rejected with 401 right away.
func Auth() gin.HandlerFunc {
	tokens := service.NewTokenService()
	users := service.NewUserService()
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		username, err := tokens.Parse(parts[1])
		if err != nil {
			abortUnauthorized(c, "token is invalid or expired")
			return
		}

		user, err := users.GetByUsername(username)
		if err != nil {
			abortUnauthorized(c, "user not found for token")
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// LoginRequired rejects anonymous requests on endpoints where
// authentication is mandatory.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			abortUnauthorized(c, "authentication credentials were not provided")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

func abortUnauthorized(c *gin.Context, detail string) {
	apiErr := entity.Unauthorized(detail)
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"detail": apiErr.Detail})
}
