package service

import (
	"time"

	"github.com/northloop/userd/internal/userd/domain"
	"github.com/northloop/userd/pkg/tokenx"
)

// TokenService issues and validates tokens for principals. It is
// stateless aside from the codec's immutable configuration and safe for
// concurrent use.
type TokenService struct {
	Codec      *tokenx.Codec
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccessToken mints a short-lived access token for the user.
func (s *TokenService) IssueAccessToken(u domain.User) (string, error) {
	return s.Codec.Sign(u.Username, tokenx.ClassAccess, time.Now(), s.AccessTTL)
}

// IssueRefreshToken mints a long-lived refresh token for the user.
func (s *TokenService) IssueRefreshToken(u domain.User) (string, error) {
	return s.Codec.Sign(u.Username, tokenx.ClassRefresh, time.Now(), s.RefreshTTL)
}

// ExtractSubject verifies the token against the declared class and
// returns its subject. Codec errors propagate untouched so callers can
// distinguish malformed from expired where they need to.
func (s *TokenService) ExtractSubject(token string, class tokenx.Class) (string, error) {
	claims, err := s.Codec.Verify(token, class)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether token is a live token of the given class,
// issued to u, while u's account is still enabled. It is a pure
// predicate: any failure short of a configuration fault degrades to
// false so the authorization gate can fall back to anonymous instead of
// faulting on bad client input.
func (s *TokenService) IsValid(token string, class tokenx.Class, u domain.User) bool {
	claims, err := s.Codec.Verify(token, class)
	if err != nil {
		return false
	}
	return claims.Subject == u.Username && u.Enabled()
}
