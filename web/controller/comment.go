package controller

import (
	"net/http"

	"reviewhub/web/middleware"
	"reviewhub/web/permission"
	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// CommentController serves comments nested under a review, itself nested
// under a title. Both parent segments must exist and be linked.
type CommentController struct {
	BaseController
	svc *service.CommentService
}

func NewCommentController(g *gin.RouterGroup) *CommentController {
	c := &CommentController{svc: service.NewCommentService()}

	comments := g.Group("/titles/:titleID/reviews/:reviewID/comments")
	{
		comments.GET("", c.list)
		comments.POST("", middleware.LoginRequired(), c.create)
		comments.GET("/:commentID", c.retrieve)
		comments.PATCH("/:commentID", c.update)
		comments.DELETE("/:commentID", c.delete)
	}
	return c
}

// pathIDs parses the two parent segments shared by every handler.
func (a *CommentController) pathIDs(c *gin.Context) (int, int, bool) {
	titleID, ok := pathID(c, "titleID")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok := pathID(c, "reviewID")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (a *CommentController) list(c *gin.Context) {
	titleID, reviewID, ok := a.pathIDs(c)
	if !ok {
		return
	}
	page, pageSize := pageParams(c)
	result, err := a.svc.List(titleID, reviewID, page, pageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (a *CommentController) retrieve(c *gin.Context) {
	titleID, reviewID, ok := a.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}
	comment, err := a.svc.Get(titleID, reviewID, commentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, a.svc.DTO(comment))
}

func (a *CommentController) create(c *gin.Context) {
	titleID, reviewID, ok := a.pathIDs(c)
	if !ok {
		return
	}
	var in service.CommentInput
	if !bindJSON(c, &in) {
		return
	}
	comment, err := a.svc.Create(titleID, reviewID, middleware.CurrentUser(c), in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (a *CommentController) update(c *gin.Context) {
	titleID, reviewID, ok := a.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}
	comment, err := a.svc.Get(titleID, reviewID, commentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !a.authorize(c, permission.AdminModerAuthorOrReadOnly, comment) {
		return
	}
	var in service.CommentInput
	if !bindJSON(c, &in) {
		return
	}
	dto, err := a.svc.Update(comment, in)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

func (a *CommentController) delete(c *gin.Context) {
	titleID, reviewID, ok := a.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentID")
	if !ok {
		return
	}
	comment, err := a.svc.Get(titleID, reviewID, commentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !a.authorize(c, permission.AdminModerAuthorOrReadOnly, comment) {
		return
	}
	if err := a.svc.Delete(comment); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
