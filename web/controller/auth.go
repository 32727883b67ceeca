package controller

import (
	"net/http"

	"reviewhub/web/service"

	"github.com/gin-gonic/gin"
)

// AuthController serves the unauthenticated signup and token-exchange
// endpoints.
type AuthController struct {
	BaseController
	svc *service.AuthService
}

func NewAuthController(g *gin.RouterGroup, mail service.Sender) *AuthController {
	c := &AuthController{svc: service.NewAuthService(mail)}

	auth := g.Group("/auth")
	{
		auth.POST("/signup", c.signup)
		auth.POST("/token", c.token)
	}
	return c
}

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (a *AuthController) signup(c *gin.Context) {
	var req signupReq
	if !bindJSON(c, &req) {
		return
	}
	user, err := a.svc.Signup(req.Username, req.Email)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "email": user.Email})
}

type tokenReq struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

func (a *AuthController) token(c *gin.Context) {
	var req tokenReq
	if !bindJSON(c, &req) {
		return
	}
	token, err := a.svc.Token(req.Username, req.ConfirmationCode)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
