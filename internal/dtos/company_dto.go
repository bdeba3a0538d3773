package dtos

import "jobbotron/internal/models"

type CompanyCreateRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`

	// Optional Fields
	Logo string `json:"logo"`
}

// CompanyPatchRequest carries partial updates: nil means "keep the
// old value".
type CompanyPatchRequest struct {
	Handle   *string `json:"handle"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Logo     *string `json:"logo"`
}

type CompanyAuthRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CompanyResponse aggregates a company with its job ids and the
// usernames of affiliated users.
type CompanyResponse struct {
	models.Company
	JobIDs []uint   `json:"jobs"`
	Users  []string `json:"users"`
}

type ListQuery struct {
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}
