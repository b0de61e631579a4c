package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/northloop/userd/internal/userd/domain"
	"github.com/northloop/userd/internal/userd/store"
	"github.com/northloop/userd/pkg/apierr"
	"github.com/northloop/userd/pkg/cryptox"
	"github.com/northloop/userd/pkg/slogx"
	"github.com/northloop/userd/pkg/tokenx"
)

var (
	// ErrInvalidCredentials is returned for both unknown users and wrong
	// passwords; the two must stay indistinguishable to the caller.
	ErrInvalidCredentials = apierr.New(apierr.KindInvalidCredentials, "username or password is incorrect")

	// ErrMissingToken is returned when the refresh call carries no token.
	ErrMissingToken = apierr.New(apierr.KindMissingToken, "x-token must not be blank")

	// ErrInvalidToken is the composite failure for the refresh flow. It
	// deliberately does not reveal which sub-check failed.
	ErrInvalidToken = apierr.New(apierr.KindInvalidToken, "x-token is invalid")
)

// AuthService implements login and the refresh flow on top of the token
// service and the user store.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Authenticate verifies the credential pair and issues an access+refresh
// pair. Unknown username and wrong password produce the identical error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed", slog.String("username", username))
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		l.Info("login failed", slog.String("username", username))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	if !u.Enabled() {
		l.Info("login rejected for disabled account", slog.String("username", username))
		return domain.TokenPair{}, ErrInvalidCredentials
	}

	return s.issuePair(u)
}

// Refresh validates a refresh token and issues a new access token. The
// refresh token is echoed back unchanged: this design does not rotate
// refresh tokens and has no revocation store, so a leaked refresh token
// stays live until its TTL elapses.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, ErrMissingToken
	}

	l := slogx.FromContext(ctx)

	username, err := s.Tokens.ExtractSubject(refreshToken, tokenx.ClassRefresh)
	if err != nil {
		l.Info("refresh rejected", slog.Any("err", err))
		return domain.TokenPair{}, ErrInvalidToken
	}

	u, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, ErrInvalidToken
		}
		return domain.TokenPair{}, err
	}

	if !s.Tokens.IsValid(refreshToken, tokenx.ClassRefresh, u) {
		return domain.TokenPair{}, ErrInvalidToken
	}

	accessToken, err := s.Tokens.IssueAccessToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken, // echoed, not rotated
		UserID:       u.ID,
	}, nil
}

func (s *AuthService) issuePair(u domain.User) (domain.TokenPair, error) {
	accessToken, err := s.Tokens.IssueAccessToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refreshToken, err := s.Tokens.IssueRefreshToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       u.ID,
	}, nil
}
