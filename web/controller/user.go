package controller

import (
	"net/http"

	"reviewhub/web/entity"
	"reviewhub/web/middleware"
	"reviewhub/web/permission"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// UserController serves the admin user console plus the self-service
// "me" endpoint. Users are addressed by username; "me" is dispatched
// inside the handlers because it shares the path segment with usernames
// (and is a reserved username for that reason).
type UserController struct {
	BaseController
	svc *service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	c := &UserController{svc: service.NewUserService()}

	users := g.Group("/users")
	{
		users.GET("", c.list)
		users.POST("", c.create)
		users.GET("/:username", c.retrieve)
		users.PATCH("/:username", c.update)
		users.DELETE("/:username", c.delete)
	}
	return c
}

func (a *UserController) list(c *gin.Context) {
	if !a.authorize(c, permission.AdminSuperOnly, nil) {
		return
	}
	page, pageSize := pageParams(c)
	result, err := a.svc.List(c.Query("search"), page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *UserController) create(c *gin.Context) {
	if !a.authorize(c, permission.AdminSuperOnly, nil) {
		return
	}
	var in service.UserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := a.svc.Create(in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (a *UserController) retrieve(c *gin.Context) {
	if c.Param("username") == "me" {
		a.me(c)
		return
	}
	if !a.authorize(c, permission.AdminSuperOnly, nil) {
		return
	}
	user, err := a.svc.Get(c.Param("username"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *UserController) update(c *gin.Context) {
	if c.Param("username") == "me" {
		a.patchMe(c)
		return
	}
	if !a.authorize(c, permission.AdminSuperOnly, nil) {
		return
	}
	var in service.UserInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := a.svc.Update(c.Param("username"), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *UserController) delete(c *gin.Context) {
	if c.Param("username") == "me" {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "method not allowed"})
		return
	}
	if !a.authorize(c, permission.AdminSuperOnly, nil) {
		return
	}
	if err := a.svc.Delete(c.Param("username")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// me returns the caller's own profile; any authenticated user qualifies.
func (a *UserController) me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondErr(c, entity.Unauthorized(""))
		return
	}
	dto, err := a.svc.Get(user.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// patchMe applies a partial self-update; the role field is discarded by
// the service.
func (a *UserController) patchMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondErr(c, entity.Unauthorized(""))
		return
	}
	var in service.UserInput
	if !bindJSON(c, &in) {
		return
	}
	dto, err := a.svc.UpdateProfile(user, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}
