// Package store defines the persistence boundary for the resource
// managers. The gormstore adapter backs it with Postgres; the memory
// adapter backs tests.
package store

import (
	"context"
	"errors"

	"jobbotron/internal/models"
)

var (
	// ErrNotFound means no row matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint rejected the write.
	ErrConflict = errors.New("conflict")
)

// ListFilter paginates and optionally narrows list queries with a
// case-insensitive substring match on the entity's external key.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}

type CompanyStore interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	// GetCompany returns the company with its jobs loaded.
	GetCompany(ctx context.Context, handle string) (*models.Company, error)
	// ListCompanies returns companies with their jobs loaded, filtered on handle.
	ListCompanies(ctx context.Context, filter ListFilter) ([]models.Company, error)
	UpdateCompany(ctx context.Context, company *models.Company) error
	// DeleteCompany cascades to the company's jobs and their applications.
	DeleteCompany(ctx context.Context, handle string) error
	// Employees maps each handle to the usernames of users whose
	// current_company points at it.
	Employees(ctx context.Context, handles ...string) (map[string][]string, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser cascades to the user's applications.
	DeleteUser(ctx context.Context, username string) error
	// AppliedJobIDs maps each user id to the ids of jobs they applied to.
	AppliedJobIDs(ctx context.Context, userIDs ...uint) (map[uint][]uint, error)
}

type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uint) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	UpdateJob(ctx context.Context, job *models.Job) error
	// DeleteJob cascades to the job's applications.
	DeleteJob(ctx context.Context, id uint) error
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, application *models.Application) error
	GetApplication(ctx context.Context, id uint) (*models.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uint) ([]models.Application, error)
	ListApplicationsByJobAndUser(ctx context.Context, jobID, userID uint) ([]models.Application, error)
	DeleteApplication(ctx context.Context, id uint) error
}

// Store is the full persistence surface the services wire against.
type Store interface {
	CompanyStore
	UserStore
	JobStore
	ApplicationStore
}
