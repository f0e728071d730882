package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"task-tracker/internal/model"
	"task-tracker/internal/util"
)

const minPasswordLength = 8

type userStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

// RegisterInput is the payload of the sign-up endpoint.
type RegisterInput struct {
	Email     string `json:"email" form:"email"`
	Username  string `json:"username" form:"username"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Password  string `json:"password" form:"password"`
}

// AuthService issues and verifies the identities that gate the API.
type AuthService struct {
	users     userStore
	passwords *util.PasswordHasher
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users userStore, passwords *util.PasswordHasher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, passwords: passwords, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new user.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	verr := model.NewValidationError()
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		verr.Add("email", msgRequired)
	} else if _, err := mail.ParseAddress(email); err != nil {
		verr.Add("email", "Enter a valid email address.")
	}
	if len(in.Password) < minPasswordLength {
		verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		verr.Add("email", "User with this email already exists.")
		return nil, verr
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Email:        email,
		Username:     strings.TrimSpace(in.Username),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks user credentials and returns JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid email or password", model.ErrUnauthorized)
		}
		return "", err
	}

	ok, err := s.passwords.Matches(password, u.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("check password for user %d: %w", u.ID, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: invalid email or password", model.ErrUnauthorized)
	}

	return s.IssueToken(u.ID)
}

func (s *AuthService) IssueToken(userID uint) (string, error) {
	token, err := util.GenerateJWT(userID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to a live user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing token", model.ErrUnauthorized)
	}
	userID, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", model.ErrUnauthorized)
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

// DeleteAccount removes the user; their tasks go with them.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.users.Delete(ctx, userID)
}
