package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/dtos"
	"jobbotron/internal/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// CompanyAuth is the POST /company-auth endpoint.
func (h *AuthHandler) CompanyAuth(c *gin.Context) {
	var req dtos.CompanyAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	token, err := h.AuthService.AuthenticateCompany(c.Request.Context(), req.Handle, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{Token: token})
}

// UserAuth is the POST /user-auth endpoint.
func (h *AuthHandler) UserAuth(c *gin.Context) {
	var req dtos.UserAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	token, err := h.AuthService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.TokenResponse{Token: token})
}
