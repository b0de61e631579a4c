// Package tokenx implements signing and verification of self-contained
// access and refresh tokens. Tokens are HS256 JWTs carrying the subject,
// the token class and the usual iat/exp timestamps. Each class is signed
// with its own secret so a leaked access secret never vouches for refresh
// tokens (and vice versa).
package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short access tokens, long refresh tokens.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Class discriminates access tokens from refresh tokens. The class is
// embedded in the token payload and re-checked on every verification, it
// is never inferred from where the token showed up.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

var (
	ErrMalformed     = errors.New("tokenx: malformed token")
	ErrClassMismatch = errors.New("tokenx: token class mismatch")
	ErrInvalidSig    = errors.New("tokenx: invalid signature")
	ErrExpired       = errors.New("tokenx: token expired")
)

// Claims are the verified contents of a token.
type Claims struct {
	jwt.RegisteredClaims

	// Class of the token ("access" or "refresh").
	Class Class `json:"cls"`
}

// Codec signs and verifies tokens. It holds only immutable configuration
// and is safe for unsynchronized concurrent use.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string

	// now is the clock used for expiry checks; overridable in tests.
	now func() time.Time
}

// NewCodec builds a Codec from the two per-class secrets. The secrets must
// be non-empty and distinct.
func NewCodec(issuer string, accessSecret, refreshSecret []byte) (*Codec, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, errors.New("tokenx: both class secrets are required")
	}
	if string(accessSecret) == string(refreshSecret) {
		return nil, errors.New("tokenx: access and refresh secrets must differ")
	}
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		issuer:        issuer,
		now:           time.Now,
	}, nil
}

// WithClock replaces the codec's clock. Intended for tests that need to
// pin expiry boundaries.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) secretFor(class Class) ([]byte, error) {
	switch class {
	case ClassAccess:
		return c.accessSecret, nil
	case ClassRefresh:
		return c.refreshSecret, nil
	default:
		return nil, fmt.Errorf("%w: unknown class %q", ErrMalformed, class)
	}
}

// Sign serializes {subject, class, issuedAt, issuedAt+ttl} and signs it
// with the secret belonging to class.
func (c *Codec) Sign(subject string, class Class, issuedAt time.Time, ttl time.Duration) (string, error) {
	secret, err := c.secretFor(class)
	if err != nil {
		return "", err
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Class: class,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses the token, recomputes the signature with the secret keyed
// by the token's OWN class field, checks the embedded class against
// expected, and enforces strict expiry. On success it returns the claims.
//
// Expiry is strict: a token whose exp equals the current instant is
// already expired.
func (c *Codec) Verify(token string, expected Class) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	// The keyfunc sees the decoded (not yet verified) claims, so the secret
	// is always selected by the class the token claims to be. A token
	// re-signed with the wrong class secret therefore fails signature
	// verification instead of silently passing.
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		tc, ok := t.Claims.(*Claims)
		if !ok {
			return nil, ErrMalformed
		}
		return c.secretFor(tc.Class)
	})
	switch {
	case err == nil:
		// verified below
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	case errors.Is(err, ErrMalformed):
		return Claims{}, err
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if claims.Class != expected {
		return Claims{}, fmt.Errorf("%w: got %q, want %q", ErrClassMismatch, claims.Class, expected)
	}

	if claims.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing expiry", ErrMalformed)
	}
	if !c.now().Before(claims.ExpiresAt.Time) {
		return Claims{}, ErrExpired
	}

	return claims, nil
}
