package controllers

import (
	"github.com/gin-gonic/gin"

	"rentwheels/internal/apperr"
	"rentwheels/internal/middleware"
	"rentwheels/internal/respond"
	"rentwheels/internal/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

func (ct *UserController) List(c *gin.Context) {
	users, err := ct.users.ListUsers(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Users retrieved successfully", users)
}

func (ct *UserController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ident, _ := middleware.CurrentUser(c)
	if !ident.Owns(id) {
		respond.Error(c, apperr.Forbidden("You can only view your own profile"))
		return
	}

	user, err := ct.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "User retrieved successfully", gin.H{"user": user})
}

func (ct *UserController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var patch services.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid request body"))
		return
	}

	ident, _ := middleware.CurrentUser(c)
	user, err := ct.users.UpdateUser(c.Request.Context(), id, patch, ident.UserID, ident.Role)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "User updated successfully", gin.H{"user": user})
}

func (ct *UserController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ct.users.DeleteUser(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "User deleted successfully", nil)
}
