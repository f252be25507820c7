package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkinly-backend/middleware"
	"checkinly-backend/services"
	"checkinly-backend/utils"
)

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

// POST /api/auth/signup
func (ac *AuthController) SignUp(c *gin.Context) {
	var in services.Credentials
	if !bindJSON(c, &in) {
		return
	}
	user, err := ac.AuthSvc.SignUp(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}

// POST /api/auth/signin
func (ac *AuthController) SignIn(c *gin.Context) {
	var in services.Credentials
	if !bindJSON(c, &in) {
		return
	}
	res, err := ac.AuthSvc.SignIn(c.Request.Context(), in, services.SessionMeta{
		UserAgent: c.Request.UserAgent(),
		IP:        c.ClientIP(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

// POST /api/auth/signout
func (ac *AuthController) SignOut(c *gin.Context) {
	if err := ac.AuthSvc.SignOut(c.Request.Context(), middleware.SessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "Signed out")
}

// GET /api/auth/session
func (ac *AuthController) Session(c *gin.Context) {
	state, err := ac.AuthSvc.Current(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, state)
}
