package services

import (
	"context"
	"errors"

	"jobbotron/internal/apierr"
	"jobbotron/internal/auth"
	"jobbotron/internal/dtos"
	"jobbotron/internal/models"
	"jobbotron/internal/store"
)

type CompanyService struct {
	Store store.Store
}

func NewCompanyService(s store.Store) *CompanyService {
	return &CompanyService{Store: s}
}

// Create registers a company. The handle must be unused; a store-level
// conflict (two creations racing past the pre-check) also answers 409.
func (s *CompanyService) Create(ctx context.Context, req dtos.CompanyCreateRequest) (*models.Company, error) {
	if _, err := s.Store.GetCompany(ctx, req.Handle); err == nil {
		return nil, apierr.Conflict("Company handle already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	company := &models.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		Logo:         req.Logo,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.Store.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apierr.Conflict("Company handle already taken")
		}
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) List(ctx context.Context, query dtos.ListQuery) ([]dtos.CompanyResponse, error) {
	companies, err := s.Store.ListCompanies(ctx, listFilter(query))
	if err != nil {
		return nil, err
	}

	handles := make([]string, len(companies))
	for i, company := range companies {
		handles[i] = company.Handle
	}
	employees, err := s.Store.Employees(ctx, handles...)
	if err != nil {
		return nil, err
	}

	responses := make([]dtos.CompanyResponse, len(companies))
	for i, company := range companies {
		responses[i] = aggregateCompany(company, employees[company.Handle])
	}
	return responses, nil
}

func (s *CompanyService) Get(ctx context.Context, handle string) (*dtos.CompanyResponse, error) {
	company, err := s.Store.GetCompany(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("Company not found")
		}
		return nil, err
	}
	employees, err := s.Store.Employees(ctx, handle)
	if err != nil {
		return nil, err
	}
	response := aggregateCompany(*company, employees[handle])
	return &response, nil
}

// Patch applies a partial update: fields left out of the request keep
// their prior values, and a supplied password is re-hashed.
func (s *CompanyService) Patch(ctx context.Context, handle string, req dtos.CompanyPatchRequest) (*models.Company, error) {
	company, err := s.Store.GetCompany(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("Company not found")
		}
		return nil, err
	}

	if req.Handle != nil && *req.Handle != company.Handle {
		if _, err := s.Store.GetCompany(ctx, *req.Handle); err == nil {
			return nil, apierr.Conflict("Company handle already taken")
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		company.Handle = *req.Handle
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Logo != nil {
		company.Logo = *req.Logo
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		company.PasswordHash = hash
	}

	if err := s.Store.UpdateCompany(ctx, company); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apierr.Conflict("Company handle already taken")
		}
		return nil, err
	}
	company.Jobs = nil
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, handle string) error {
	if err := s.Store.DeleteCompany(ctx, handle); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.NotFound("Company not found")
		}
		return err
	}
	return nil
}

func aggregateCompany(company models.Company, users []string) dtos.CompanyResponse {
	jobIDs := make([]uint, len(company.Jobs))
	for i, job := range company.Jobs {
		jobIDs[i] = job.ID
	}
	if users == nil {
		users = []string{}
	}
	company.Jobs = nil
	return dtos.CompanyResponse{Company: company, JobIDs: jobIDs, Users: users}
}
