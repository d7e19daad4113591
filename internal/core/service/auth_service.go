package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
)

// AuthService implements signup and login.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

var _ ports.AuthService = (*AuthService)(nil)

// IsUserPresent reports whether an account exists for the email. Any lookup
// failure collapses to false.
func (s *AuthService) IsUserPresent(ctx context.Context, email string) bool {
	_, err := s.users.FindByEmail(ctx, email)
	return err == nil
}

// Signup creates a new account with a bcrypt password hash.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) error {
	if input.Email == "" || input.Password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("email", input.Email).Msg("user registered")
	return nil
}

// Login verifies the password and returns a signed token. A missing account
// surfaces as ErrUserNotFound, a wrong password as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("user logged in")
	return token, nil
}
