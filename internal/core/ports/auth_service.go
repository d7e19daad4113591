package ports

import "context"

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthService implements signup and credential-based login.
type AuthService interface {
	// IsUserPresent reports whether an account exists for the email. Lookup
	// failures are swallowed into false.
	IsUserPresent(ctx context.Context, email string) bool
	Signup(ctx context.Context, input SignupInput) error
	// Login verifies the password for the account and returns a signed token.
	// A wrong password yields domain.ErrInvalidCredentials; an unknown email
	// yields domain.ErrUserNotFound.
	Login(ctx context.Context, email, password string) (string, error)
}
