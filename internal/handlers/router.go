package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobbotron/internal/auth"
)

// NewRouter assembles the gin engine: CORS, health, auth endpoints,
// and the guarded resource routes.
func NewRouter(
	tokens *auth.TokenService,
	authHandler *AuthHandler,
	companyHandler *CompanyHandler,
	userHandler *UserHandler,
	jobHandler *JobHandler,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/health", HealthCheck)

	r.POST("/company-auth", authHandler.CompanyAuth)
	r.POST("/user-auth", authHandler.UserAuth)

	companies := r.Group("/companies")
	{
		companies.POST("", companyHandler.Create)
		companies.GET("", tokens.LoggedIn(), companyHandler.List)
		companies.GET("/:handle", tokens.LoggedIn(), companyHandler.Get)
		companies.PATCH("/:handle", tokens.CorrectCompany("handle"), companyHandler.Patch)
		companies.DELETE("/:handle", tokens.CorrectCompany("handle"), companyHandler.Delete)
	}

	users := r.Group("/users")
	{
		users.POST("", userHandler.Create)
		users.GET("", tokens.LoggedIn(), userHandler.List)
		users.GET("/:username", tokens.LoggedIn(), userHandler.Get)
		users.PATCH("/:username", tokens.CorrectUser("username"), userHandler.Patch)
		users.DELETE("/:username", tokens.CorrectUser("username"), userHandler.Delete)
	}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", tokens.CompanyAccount(), jobHandler.Create)
		jobs.GET("", tokens.LoggedIn(), jobHandler.List)
		jobs.GET("/:id", tokens.LoggedIn(), jobHandler.Get)
		// Ownership of a job is resolved from the store against the
		// token, because the path carries a job id, not a handle.
		jobs.PATCH("/:id", tokens.CompanyAccount(), jobHandler.Patch)
		jobs.DELETE("/:id", tokens.CompanyAccount(), jobHandler.Delete)

		jobs.POST("/:id/applications", tokens.IndividualAccount(), jobHandler.Apply)
		jobs.GET("/:id/applications", tokens.LoggedIn(), jobHandler.ListApplications)
		jobs.GET("/:id/applications/:app_id", tokens.LoggedIn(), jobHandler.GetApplication)
		jobs.DELETE("/:id/applications/:app_id", tokens.LoggedIn(), jobHandler.DeleteApplication)
	}

	return r
}
