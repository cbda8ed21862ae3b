package service

import (
	"context"
	"errors"
	"strings"

	"github.com/crucial707/staybook/internal/apperr"
	"github.com/crucial707/staybook/internal/auth"
	"github.com/crucial707/staybook/internal/models"
	"github.com/crucial707/staybook/internal/repo"
)

// AuthService registers users and exchanges credentials for identity tokens.
type AuthService struct {
	Users  UserStore
	Hasher *auth.PasswordHasher
	Tokens *auth.TokenService
}

func NewAuthService(users UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, Tokens: tokens}
}

// Register stores a new user with a hashed password. Emails are compared case-insensitively.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := s.Hasher.Hash(password)
	if errors.Is(err, auth.ErrEmptyPassword) {
		return nil, apperr.Validation("validation failed", map[string]string{"password": "required"})
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := s.Users.Create(ctx, strings.TrimSpace(name), normalizeEmail(email), hash)
	if errors.Is(err, repo.ErrDuplicateEmail) {
		return nil, apperr.Validation("validation failed", map[string]string{"email": "already registered"})
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the user with a freshly issued token.
// An unknown email is NotFound and a wrong password is Unprocessable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, "", apperr.NotFound("not found")
	}
	if err != nil {
		return nil, "", err
	}

	if !s.Hasher.Verify(user.PasswordHash, password) {
		return nil, "", apperr.Unprocessable("pass not ok")
	}

	token, err := s.Tokens.Issue(auth.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}

// Profile returns the public profile of the identified user.
func (s *AuthService) Profile(ctx context.Context, id auth.Identity) (models.Profile, error) {
	user, err := s.Users.GetByID(ctx, id.ID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Profile{}, apperr.NotFound("user not found")
	}
	if err != nil {
		return models.Profile{}, err
	}
	return user.Profile(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
