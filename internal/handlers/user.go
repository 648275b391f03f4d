package handlers

import (
	"boardhub/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type valueRequest struct {
	Value string `json:"value" binding:"required"`
}

type emailCodeRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code"`
}

type loginRequest struct {
	LoginID  string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

func (h *UserHandler) CheckLoginID(c *gin.Context) {
	var in valueRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.CheckLoginID(c.Request.Context(), in.Value)
	respond(c, res, err)
}

func (h *UserHandler) CheckNickname(c *gin.Context) {
	var in valueRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.CheckNickname(c.Request.Context(), in.Value)
	respond(c, res, err)
}

func (h *UserHandler) CheckEmail(c *gin.Context) {
	var in valueRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.CheckEmail(c.Request.Context(), in.Value)
	respond(c, res, err)
}

func (h *UserHandler) SendCode(c *gin.Context) {
	var in emailCodeRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.SendVerificationCode(c.Request.Context(), in.Email)
	respond(c, res, err)
}

func (h *UserHandler) CheckCode(c *gin.Context) {
	var in emailCodeRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.CheckVerificationCode(c.Request.Context(), in.Email, in.Code)
	respond(c, res, err)
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var in services.SignUpInput
	if !bind(c, &in) {
		return
	}
	res, err := h.users.SignUp(c.Request.Context(), in)
	respond(c, res, err)
}

func (h *UserHandler) Login(c *gin.Context) {
	var in loginRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.Login(c.Request.Context(), in.LoginID, in.Password)
	respond(c, res, err)
}

func (h *UserHandler) GoogleLogin(c *gin.Context) {
	var in googleLoginRequest
	if !bind(c, &in) {
		return
	}
	res, err := h.users.GoogleLogin(c.Request.Context(), in.IDToken)
	respond(c, res, err)
}
