// Package controller provides the HTTP request handlers of the review
// API. Each controller registers its own routes and composes payload
// binding, permission checks and the service layer.
package controller

import (
	"reviewhub/web/entity"
	"reviewhub/web/middleware"
	"reviewhub/web/permission"

	"github.com/gin-gonic/gin"
)

// BaseController provides the shared authorization step for all
// controllers.
type BaseController struct{}

// authorize evaluates rule against the current request and writes the
// refusal itself: 401 for anonymous callers, 403 for authenticated ones.
// Returns true when the request may proceed.
func (a *BaseController) authorize(c *gin.Context, rule permission.Rule, target permission.Target) bool {
	user := middleware.CurrentUser(c)
	if rule(c.Request.Method, user, target) {
		return true
	}
	apiErr := entity.Forbidden("")
	if user == nil {
		apiErr = entity.Unauthorized("")
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"detail": apiErr.Detail})
	return false
}
