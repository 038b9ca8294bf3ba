package services

import (
	"context"
	"errors"
	"strings"

	"timetrack-backend/internal/auth"
	"timetrack-backend/internal/models"
	"timetrack-backend/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles registration and authentication.
type UserService struct {
	users UserStore
	jwt   *auth.JWTManager
}

func NewUserService(users UserStore, jwt *auth.JWTManager) *UserService {
	return &UserService{users: users, jwt: jwt}
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return nil, validationf("email is required")
	}
	if len(req.Password) < 8 {
		return nil, validationf("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, validationf("email %s is already registered", req.Email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.VerifyPassword(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// Profile returns the authenticated user's record.
func (s *UserService) Profile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, "user", userID)
	}
	return user, nil
}

func (s *UserService) issueToken(user *models.User) (*models.LoginResponse, error) {
	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}
