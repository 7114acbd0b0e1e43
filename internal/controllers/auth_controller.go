package controllers

import (
	"github.com/gin-gonic/gin"

	"rentwheels/internal/apperr"
	"rentwheels/internal/middleware"
	"rentwheels/internal/respond"
	"rentwheels/internal/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ct *AuthController) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid request body"))
		return
	}

	user, err := ct.auth.Signup(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Created(c, "User registered successfully", gin.H{"user": user})
}

func (ct *AuthController) Signin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid request body"))
		return
	}

	user, err := ct.auth.Signin(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		respond.Error(c, err)
		return
	}

	token, err := middleware.GenerateToken(*user)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "User signed in successfully", gin.H{
		"user":  user,
		"token": token,
	})
}
