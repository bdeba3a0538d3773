package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/dtos"
	"jobbotron/internal/services"
)

type CompanyHandler struct {
	CompanyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{CompanyService: companyService}
}

// Create is the unauthenticated POST /companies registration endpoint.
func (h *CompanyHandler) Create(c *gin.Context) {
	var req dtos.CompanyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	company, err := h.CompanyService.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	var query dtos.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBinding(c, err)
		return
	}
	companies, err := h.CompanyService.List(c.Request.Context(), query)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.CompanyService.Get(c.Request.Context(), c.Param("handle"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Patch(c *gin.Context) {
	var req dtos.CompanyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	company, err := h.CompanyService.Patch(c.Request.Context(), c.Param("handle"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.CompanyService.Delete(c.Request.Context(), c.Param("handle")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "Company deleted"})
}
