package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/dtos"
	"jobbotron/internal/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// Create is the unauthenticated POST /users registration endpoint.
func (h *UserHandler) Create(c *gin.Context) {
	var req dtos.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	user, err := h.UserService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c *gin.Context) {
	var query dtos.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBinding(c, err)
		return
	}
	users, err := h.UserService.List(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.UserService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Patch(c *gin.Context) {
	var req dtos.UserPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	user, err := h.UserService.Patch(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.UserService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "User deleted"})
}
