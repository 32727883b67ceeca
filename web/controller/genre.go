package controller

import (
	"net/http"

	"reviewhub/web/permission"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// GenreController exposes list/create/destroy on genres, mirroring
// categories.
type GenreController struct {
	BaseController
	svc *service.GenreService
}

func NewGenreController(g *gin.RouterGroup) *GenreController {
	c := &GenreController{svc: service.NewGenreService()}

	genres := g.Group("/genres")
	{
		genres.GET("", c.list)
		genres.POST("", c.create)
		genres.DELETE("/:slug", c.delete)
	}
	return c
}

func (a *GenreController) list(c *gin.Context) {
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

func (a *GenreController) create(c *gin.Context) {
	if !a.authorize(c, permission.AdminOrReadOnly, nil) {
		return
	}
	var in service.GenreInput
	if !bindJSON(c, &in) {
		return
	}
	genre, err := a.svc.Create(in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (a *GenreController) delete(c *gin.Context) {
	if !a.authorize(c, permission.AdminOrReadOnly, nil) {
		return
	}
	if err := a.svc.Delete(c.Param("slug")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
