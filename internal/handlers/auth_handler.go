package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/daycare-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	signup *account.Signup
	login  *account.Login
}

func NewAuthHandler(signup *account.Signup, login *account.Login) *AuthHandler {
	return &AuthHandler{signup: signup, login: login}
}

// --------- Requests ---------

type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.signup.Execute(c.Request.Context(), account.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}
