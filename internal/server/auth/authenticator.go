package auth

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/common"
)

// Authenticator turns an Authorization header into an authenticated user id.
type Authenticator struct {
	tokens TokenService
}

func NewAuthenticator(tokens TokenService) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Authenticate returns the principal for header or one of
// common.ErrAuthRequired, common.ErrAuthMalformed and
// common.ErrAuthInvalidOrExpired (the latter wrapping the token error).
func (a *Authenticator) Authenticate(header string) (int64, error) {
	if header == "" {
		return 0, common.ErrAuthRequired
	}

	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return 0, common.ErrAuthMalformed
	}

	userID, err := a.tokens.Validate(strings.TrimSpace(token))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrAuthInvalidOrExpired, err)
	}

	return userID, nil
}
