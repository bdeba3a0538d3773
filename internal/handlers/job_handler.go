package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobbotron/internal/apierr"
	"jobbotron/internal/auth"
	"jobbotron/internal/dtos"
	"jobbotron/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
}

func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{JobService: jobService}
}

// claims returns the claims a guard stored; guards always run before
// these handlers, so a miss is a wiring bug.
func claims(c *gin.Context) (auth.Claims, bool) {
	value, ok := auth.ClaimsFrom(c)
	if !ok {
		fail(c, apierr.Unauthorized("Unauthorized -- not logged in"))
		return nil, false
	}
	return value, true
}

// Create is the POST /jobs endpoint. The CompanyAccount guard runs
// first; the owning company is the token's handle.
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	company, ok := value.(auth.CompanyClaims)
	if !ok {
		fail(c, apierr.Forbidden("Unauthorized -- not a company account"))
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), company.Handle, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	job, err := h.JobService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Patch(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req dtos.JobPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	job, err := h.JobService.Patch(c.Request.Context(), id, value, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	if err := h.JobService.Delete(c.Request.Context(), id, value); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "Job deleted"})
}

// Apply is the POST /jobs/:id/applications endpoint. The
// IndividualAccount guard runs first.
func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	applicant, ok := value.(auth.IndividualClaims)
	if !ok {
		fail(c, apierr.Forbidden("Unauthorized -- not an individual user account"))
		return
	}
	message, err := h.JobService.Apply(c.Request.Context(), id, applicant)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: message})
}

func (h *JobHandler) ListApplications(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	applications, err := h.JobService.ListApplications(c.Request.Context(), id, value)
	if err != nil {
		fail(c, err)
		return
	}
	// An individual with no applications gets an informational message
	// instead of an empty list.
	if _, isIndividual := value.(auth.IndividualClaims); isIndividual && len(applications) == 0 {
		c.JSON(http.StatusOK, dtos.MessageResponse{Message: "User has no applications for this job."})
		return
	}
	c.JSON(http.StatusOK, applications)
}

func (h *JobHandler) GetApplication(c *gin.Context) {
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}
	appID, ok := idParam(c, "app_id")
	if !ok {
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	application, err := h.JobService.GetApplication(c.Request.Context(), jobID, appID, value)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *JobHandler) DeleteApplication(c *gin.Context) {
	jobID, ok := idParam(c, "id")
	if !ok {
		return
	}
	appID, ok := idParam(c, "app_id")
	if !ok {
		return
	}
	value, ok := claims(c)
	if !ok {
		return
	}
	if err := h.JobService.DeleteApplication(c.Request.Context(), jobID, appID, value); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.MessageResponse{Message: "Application deleted"})
}
