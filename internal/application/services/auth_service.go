package services

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

// AuthService registers and signs in users
type AuthService struct {
	users  repositories.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a customer account
func (s *AuthService) Register(ctx context.Context, req *entities.RegisterRequest) (*entities.User, error) {
	if req == nil {
		return nil, apperrors.NewValidationError("registration details are required")
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if fullName == "" {
		return nil, apperrors.NewValidationError("full name is required")
	}
	if !emailRegex.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email format")
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New().String(),
		FullName:     fullName,
		Email:        email,
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		Role:         entities.RoleCustomer,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, req *entities.LoginRequest) (*entities.AuthResult, error) {
	if req == nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue token", err)
	}

	return &entities.AuthResult{
		Token:     token,
		Role:      user.Role,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Me returns the profile of the authenticated caller
func (s *AuthService) Me(ctx context.Context) (*entities.User, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	return s.users.GetByID(ctx, identity.UserID)
}
