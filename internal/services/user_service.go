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

type UserService struct {
	Store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{Store: s}
}

func (s *UserService) Create(ctx context.Context, req dtos.UserCreateRequest) (*models.User, error) {
	if _, err := s.Store.GetUser(ctx, req.Username); err == nil {
		return nil, apierr.Conflict("Username already taken")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:       req.Username,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Photo:          req.Photo,
		PasswordHash:   hash,
		CurrentCompany: req.CurrentCompany,
	}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apierr.Conflict("Username already taken")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, query dtos.ListQuery) ([]dtos.UserResponse, error) {
	users, err := s.Store.ListUsers(ctx, listFilter(query))
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, len(users))
	for i, user := range users {
		userIDs[i] = user.ID
	}
	applied, err := s.Store.AppliedJobIDs(ctx, userIDs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dtos.UserResponse, len(users))
	for i, user := range users {
		responses[i] = aggregateUser(user, applied[user.ID])
	}
	return responses, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*dtos.UserResponse, error) {
	user, err := s.Store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, err
	}
	applied, err := s.Store.AppliedJobIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response := aggregateUser(*user, applied[user.ID])
	return &response, nil
}

// Patch applies a partial update; a username change re-validates
// uniqueness against other users.
func (s *UserService) Patch(ctx context.Context, username string, req dtos.UserPatchRequest) (*models.User, error) {
	user, err := s.Store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.Store.GetUser(ctx, *req.Username); err == nil {
			return nil, apierr.Conflict("Username already taken")
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Photo != nil {
		user.Photo = *req.Photo
	}
	if req.CurrentCompany != nil {
		user.CurrentCompany = req.CurrentCompany
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.Store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, apierr.Conflict("Username already taken")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.Store.DeleteUser(ctx, username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.NotFound("User not found")
		}
		return err
	}
	return nil
}

func aggregateUser(user models.User, applied []uint) dtos.UserResponse {
	if applied == nil {
		applied = []uint{}
	}
	return dtos.UserResponse{User: user, AppliedTo: applied}
}
