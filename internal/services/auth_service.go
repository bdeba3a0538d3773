package services

import (
	"context"
	"errors"

	"jobbotron/internal/apierr"
	"jobbotron/internal/auth"
	"jobbotron/internal/store"
)

// AuthService exchanges credentials for signed session tokens.
type AuthService struct {
	Store  store.Store
	Tokens *auth.TokenService
}

func NewAuthService(s store.Store, tokens *auth.TokenService) *AuthService {
	return &AuthService{Store: s, Tokens: tokens}
}

func (s *AuthService) AuthenticateCompany(ctx context.Context, handle, password string) (string, error) {
	company, err := s.Store.GetCompany(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.BadRequest("Invalid company handle")
		}
		return "", err
	}
	if !auth.CheckPassword(company.PasswordHash, password) {
		return "", apierr.BadRequest("Invalid password")
	}
	return s.Tokens.Issue(auth.CompanyClaims{Handle: company.Handle})
}

func (s *AuthService) AuthenticateUser(ctx context.Context, username, password string) (string, error) {
	user, err := s.Store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", apierr.BadRequest("Invalid username")
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", apierr.BadRequest("Invalid password")
	}
	return s.Tokens.Issue(auth.IndividualClaims{ID: user.ID, Username: user.Username})
}
