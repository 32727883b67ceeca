package controller

import (
	"net/http"

	"reviewhub/web/permission"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// CategoryController exposes list/create/destroy on categories; there is
// no retrieve or update.
type CategoryController struct {
	BaseController
	svc *service.CategoryService
}

func NewCategoryController(g *gin.RouterGroup) *CategoryController {
	c := &CategoryController{svc: service.NewCategoryService()}

	categories := g.Group("/categories")
	{
		categories.GET("", c.list)
		categories.POST("", c.create)
		categories.DELETE("/:slug", c.delete)
	}
	return c
}

func (a *CategoryController) list(c *gin.Context) {
	if !a.authorize(c, permission.AdminOrReadOnly, nil) {
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

func (a *CategoryController) create(c *gin.Context) {
	if !a.authorize(c, permission.AdminOrReadOnly, nil) {
		return
	}
	var in service.CategoryInput
	if !bindJSON(c, &in) {
		return
	}
	category, err := a.svc.Create(in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (a *CategoryController) delete(c *gin.Context) {
	if !a.authorize(c, permission.AdminOrReadOnly, nil) {
		return
	}
	if err := a.svc.Delete(c.Param("slug")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
