package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/speernotes/notes-system/internal/core/domain"
	"github.com/speernotes/notes-system/internal/core/ports"
)

// PrincipalResolver resolves a bearer token to an authenticated principal.
// It validates the token and then loads the user record, so a structurally
// valid token for a deleted account is rejected rather than accepted.
type PrincipalResolver struct {
	tokens ports.TokenService
	users  ports.UserRepository
}

func NewPrincipalResolver(tokens ports.TokenService, users ports.UserRepository) *PrincipalResolver {
	return &PrincipalResolver{tokens: tokens, users: users}
}

var _ ports.PrincipalResolver = (*PrincipalResolver)(nil)

// Resolve parses "Bearer <token>", validates it, and loads the subject's
// user record. The shared-note grants on the returned principal are a
// snapshot taken now; nothing is cached across requests.
func (r *PrincipalResolver) Resolve(ctx context.Context, authorizationHeader string) (*domain.Principal, error) {
	if authorizationHeader == "" {
		return nil, fmt.Errorf("missing authorization header: %w", domain.ErrAuthentication)
	}

	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, fmt.Errorf("malformed authorization header: %w", domain.ErrAuthentication)
	}

	if !r.tokens.Validate(parts[1]) {
		return nil, fmt.Errorf("invalid token: %w", domain.ErrAuthentication)
	}

	subject, err := r.tokens.Subject(parts[1])
	if err != nil {
		return nil, err
	}

	user, err := r.users.FindByEmail(ctx, subject)
	if err != nil {
		return nil, err
	}

	return &domain.Principal{
		ID:            user.ID,
		Email:         user.Email,
		SharedNoteIDs: user.SharedNoteIDs,
	}, nil
}
