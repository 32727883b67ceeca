package controller

import (
	"net/http"

	"reviewhub/web/middleware"
	"reviewhub/web/permission"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// ReviewController serves reviews nested under their title. The title id
// comes from the path, the author from the request context; neither is
// accepted in payloads.
type ReviewController struct {
	BaseController
	svc *service.ReviewService
}

func NewReviewController(g *gin.RouterGroup) *ReviewController {
	c := &ReviewController{svc: service.NewReviewService()}

	reviews := g.Group("/titles/:titleID/reviews")
	{
		reviews.GET("", c.list)
		reviews.POST("", middleware.LoginRequired(), c.create)
		reviews.GET("/:reviewID", c.retrieve)
		reviews.PATCH("/:reviewID", c.update)
		reviews.DELETE("/:reviewID", c.delete)
	}
	return c
}

func (a *ReviewController) list(c *gin.Context) {
	titleID, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	result, err := a.svc.List(titleID, page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *ReviewController) retrieve(c *gin.Context) {
	titleID, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewID")
	if !ok {
		return
	}
	review, err := a.svc.Get(titleID, reviewID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a.svc.DTO(review))
}

func (a *ReviewController) create(c *gin.Context) {
	titleID, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	var in service.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	review, err := a.svc.Create(titleID, middleware.CurrentUser(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (a *ReviewController) update(c *gin.Context) {
	titleID, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewID")
	if !ok {
		return
	}
	review, err := a.svc.Get(titleID, reviewID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !a.authorize(c, permission.AdminModerAuthorOrReadOnly, review) {
		return
	}
	var in service.ReviewInput
	if !bindJSON(c, &in) {
		return
	}
	dto, err := a.svc.Update(review, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (a *ReviewController) delete(c *gin.Context) {
	titleID, ok := pathID(c, "titleID")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewID")
	if !ok {
		return
	}
	review, err := a.svc.Get(titleID, reviewID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !a.authorize(c, permission.AdminModerAuthorOrReadOnly, review) {
		return
	}
	if err := a.svc.Delete(review); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
