package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/authbase/authbase-go/internal/crypto"
	"github.com/authbase/authbase-go/internal/model"
	"github.com/authbase/authbase-go/internal/repository"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailInvalid       = errors.New("enter a valid email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotFound      = errors.New("enter a valid email")
	ErrNotSessionOwner    = errors.New("you can only log out your own session")
)

// UserStore is the persistence surface the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdateSessionToken(ctx context.Context, id string, token sql.NullString) error
}

// AuthService handles registration, login, logout and session checks.
type AuthService struct {
	store     UserStore
	validate  *validator.Validate
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		store:     store,
		validate:  validator.New(),
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns its public fields.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if err := s.checkRegisterInput(req); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(req.Email),
		PasswordHash: hash,
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login authenticates a user, persists the issued token as the user's current
// session and returns the token. A failed persist fails the whole login.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	user, err := s.store.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	if err := s.store.UpdateSessionToken(ctx, user.ID, sql.NullString{String: token, Valid: true}); err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{AccessToken: token}, nil
}

// Logout clears the stored session token for the target email. Callers may
// only log out their own session; the check is against the authenticated
// caller's email. Clearing an already-absent token still succeeds.
func (s *AuthService) Logout(ctx context.Context, callerEmail string, req model.LogoutRequest) error {
	if req.Email == "" {
		return ErrEmailRequired
	}

	email := normalizeEmail(req.Email)
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrEmailNotFound
		}
		return err
	}

	if email != normalizeEmail(callerEmail) {
		return ErrNotSessionOwner
	}

	if err := s.store.UpdateSessionToken(ctx, user.ID, sql.NullString{}); err != nil {
		return err
	}

	slog.Info("user logged out", "email", email)
	return nil
}

// IsSessionCurrent reports whether the presented token is the user's stored
// session token. Used by the auth middleware when revocation checks are on.
func (s *AuthService) IsSessionCurrent(ctx context.Context, userID, token string) (bool, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	return user.SessionToken.Valid && user.SessionToken.String == token, nil
}

// checkRegisterInput maps struct validation failures onto the error taxonomy.
// Missing fields win over a short password, which wins over a malformed email.
func (s *AuthService) checkRegisterInput(req model.CreateUserRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failed := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = fe.Tag()
	}

	switch {
	case failed["Email"] == "required":
		return ErrEmailRequired
	case failed["Password"] == "required":
		return ErrPasswordRequired
	case failed["Password"] == "min":
		return ErrPasswordTooShort
	case failed["Email"] == "email":
		return ErrEmailInvalid
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
