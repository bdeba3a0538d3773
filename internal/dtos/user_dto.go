package dtos

import "jobbotron/internal/models"

type UserCreateRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`

	// Optional Fields
	Photo          string  `json:"photo"`
	CurrentCompany *string `json:"current_company"`
}

type UserPatchRequest struct {
	Username       *string `json:"username"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Password       *string `json:"password"`
	Photo          *string `json:"photo"`
	CurrentCompany *string `json:"current_company"`
}

type UserAuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse aggregates a user with the ids of jobs they applied to.
type UserResponse struct {
	models.User
	AppliedTo []uint `json:"applied_to"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
