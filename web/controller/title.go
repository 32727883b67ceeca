package controller

import (
	"net/http"
	"strconv"

	"reviewhub/web/permission"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// TitleController exposes title CRUD. Updates are PATCH only; PUT is not
// registered and answers 405.
type TitleController struct {
	BaseController
	svc *service.TitleService
}

func NewTitleController(g *gin.RouterGroup) *TitleController {
	c := &TitleController{svc: service.NewTitleService()}

	titles := g.Group("/titles")
	{
		titles.GET("", c.list)
		titles.POST("", c.create)
		titles.GET("/:titleID", c.retrieve)
		titles.PATCH("/:titleID", c.update)
		titles.DELETE("/:titleID", c.delete)
	}
	return c
}

func (a *TitleController) list(c *gin.Context) {
	if !a.authorize(c, permission.AnyOf(permission.ReadOnly, permission.AdminOrReadOnly), nil) {
		return
	}
	filter := service.TitleFilter{
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
		Name:     c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}
	page, pageSize := pageParams(c)
	result, err := a.svc.List(filter, page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *TitleController) retrieve(c *gin.Context) {
	id, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	title, err := a.svc.Get(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (a *TitleController) create(c *gin.Context) {
	if !a.authorize(c, permission.AnyOf(permission.ReadOnly, permission.AdminOrReadOnly), nil) {
		return
	}
	var in service.TitleInput
	if !bindJSON(c, &in) {
		return
	}
	title, err := a.svc.Create(in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

func (a *TitleController) update(c *gin.Context) {
	if !a.authorize(c, permission.AnyOf(permission.ReadOnly, permission.AdminOrReadOnly), nil) {
		return
	}
	id, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	var in service.TitleInput
	if !bindJSON(c, &in) {
		return
	}
	title, err := a.svc.Update(id, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

func (a *TitleController) delete(c *gin.Context) {
	if !a.authorize(c, permission.AnyOf(permission.ReadOnly, permission.AdminOrReadOnly), nil) {
		return
	}
	id, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	if err := a.svc.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
