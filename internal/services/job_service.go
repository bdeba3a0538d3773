package services

import (
	"context"
	"errors"
	"fmt"

	"jobbotron/internal/apierr"
	"jobbotron/internal/auth"
	"jobbotron/internal/dtos"
	"jobbotron/internal/models"
	"jobbotron/internal/store"
)

type JobService struct {
	Store store.Store
}

func NewJobService(s store.Store) *JobService {
	return &JobService{Store: s}
}

// Create posts a job for the authenticated company. The owner comes
// from the token's handle, never from the request body.
func (s *JobService) Create(ctx context.Context, owner string, req dtos.JobCreateRequest) (*models.Job, error) {
	job := &models.Job{
		Title:   req.Title,
		Salary:  *req.Salary,
		Equity:  req.Equity,
		Company: owner,
	}
	if err := s.Store.CreateJob(ctx, job); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("Company not found")
		}
		return nil, err
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context) ([]models.Job, error) {
	return s.Store.ListJobs(ctx)
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.Store.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("Job not found")
		}
		return nil, err
	}
	return job, nil
}

// resolveOwner looks up a job's owning company handle. Every
// ownership decision on jobs and their applications goes through this
// single lookup; nothing is cached across requests.
func (s *JobService) resolveOwner(ctx context.Context, jobID uint) (string, error) {
	job, err := s.Store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.NotFound("Job not found")
		}
		return "", err
	}
	return job.Company, nil
}

// requireOwner denies with 403 unless claims name the company that
// owns the job.
func (s *JobService) requireOwner(ctx context.Context, jobID uint, claims auth.Claims) error {
	owner, err := s.resolveOwner(ctx, jobID)
	if err != nil {
		return err
	}
	company, ok := claims.(auth.CompanyClaims)
	if !ok || company.Handle != owner {
		return apierr.Forbidden("Unauthorized -- wrong company")
	}
	return nil
}

func (s *JobService) Patch(ctx context.Context, id uint, claims auth.Claims, req dtos.JobPatchRequest) (*models.Job, error) {
	if err := s.requireOwner(ctx, id, claims); err != nil {
		return nil, err
	}
	job, err := s.Store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Equity != nil {
		job.Equity = req.Equity
	}

	if err := s.Store.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id uint, claims auth.Claims) error {
	if err := s.requireOwner(ctx, id, claims); err != nil {
		return err
	}
	return s.Store.DeleteJob(ctx, id)
}

// Apply records an individual's application to a job. Applying twice
// creates two rows; deduplication is an open product decision.
func (s *JobService) Apply(ctx context.Context, jobID uint, applicant auth.IndividualClaims) (string, error) {
	application := &models.Application{JobID: jobID, UserID: applicant.ID}
	if err := s.Store.CreateApplication(ctx, application); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.NotFound("Job not found")
		}
		return "", err
	}
	return fmt.Sprintf("Application received for job #%d", jobID), nil
}

// ListApplications returns the applications visible to the caller: a
// company sees every application for a job it owns, an individual
// sees only their own.
func (s *JobService) ListApplications(ctx context.Context, jobID uint, claims auth.Claims) ([]models.Application, error) {
	switch c := claims.(type) {
	case auth.CompanyClaims:
		if err := s.requireOwner(ctx, jobID, c); err != nil {
			return nil, err
		}
		return s.Store.ListApplicationsByJob(ctx, jobID)
	case auth.IndividualClaims:
		if _, err := s.resolveOwner(ctx, jobID); err != nil {
			return nil, err
		}
		return s.Store.ListApplicationsByJobAndUser(ctx, jobID, c.ID)
	default:
		return nil, apierr.Forbidden("Unauthorized -- unknown account type")
	}
}

// authorizeApplication enforces per-application ownership: a company
// caller must own the job, an individual caller must be the applicant.
func (s *JobService) authorizeApplication(ctx context.Context, jobID, appID uint, claims auth.Claims) (*models.Application, error) {
	application, err := s.Store.GetApplication(ctx, appID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("Application not found")
		}
		return nil, err
	}

	switch c := claims.(type) {
	case auth.CompanyClaims:
		owner, err := s.resolveOwner(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if owner != c.Handle {
			return nil, apierr.Forbidden("Unauthorized -- incorrect company")
		}
	case auth.IndividualClaims:
		if application.UserID != c.ID {
			return nil, apierr.Forbidden("Unauthorized -- incorrect user")
		}
	default:
		return nil, apierr.Forbidden("Unauthorized -- unknown account type")
	}
	return application, nil
}

func (s *JobService) GetApplication(ctx context.Context, jobID, appID uint, claims auth.Claims) (*models.Application, error) {
	return s.authorizeApplication(ctx, jobID, appID, claims)
}

func (s *JobService) DeleteApplication(ctx context.Context, jobID, appID uint, claims auth.Claims) error {
	application, err := s.authorizeApplication(ctx, jobID, appID, claims)
	if err != nil {
		return err
	}
	return s.Store.DeleteApplication(ctx, application.ID)
}
