package ports

// TokenService issues and validates the opaque bearer tokens used for
// stateless authentication. Implementations are pure functions over a fixed
// deployment secret: no token is ever stored.
type TokenService interface {
	// Issue produces a signed token whose subject is the user's email.
	Issue(subject string) (string, error)
	// Validate reports whether the raw token has a valid signature and has
	// not expired. It never fails on malformed input, it returns false.
	Validate(raw string) bool
	// Subject extracts the subject from a valid token. It returns an error
	// wrapping domain.ErrAuthentication when the token does not validate.
	Subject(raw string) (string, error)
}
