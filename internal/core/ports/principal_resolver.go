package ports

import (
	"context"

	"github.com/speernotes/notes-system/internal/core/domain"
)

// PrincipalResolver turns an Authorization header into an authenticated
// principal. Resolution happens on every protected request and always
// consults both the token service and the user store; nothing is cached
// across requests.
type PrincipalResolver interface {
	// Resolve parses a "Bearer <token>" header value. A missing, malformed,
	// invalid, or expired token yields domain.ErrAuthentication; a valid
	// token whose subject no longer resolves to a user yields
	// domain.ErrUserNotFound.
	Resolve(ctx context.Context, authorizationHeader string) (*domain.Principal, error)
}
