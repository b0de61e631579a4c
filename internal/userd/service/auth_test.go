package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/northloop/userd/internal/userd/service"
	"github.com/northloop/userd/pkg/tokenx"
)

func TestAuthService_Authenticate(t *testing.T) {
	st := newTestStore(t)
	tokens := newTestTokens(t)
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: tokens}

	alice := createAlice(t, users)

	pair, err := auth.Authenticate(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	require.Equal(t, alice.ID, pair.UserID)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	subject, err := tokens.ExtractSubject(pair.AccessToken, tokenx.ClassAccess)
	require.NoError(t, err)
	require.Equal(t, "alice", subject)

	subject, err = tokens.ExtractSubject(pair.RefreshToken, tokenx.ClassRefresh)
	require.NoError(t, err)
	require.Equal(t, "alice", subject)
}

func TestAuthService_AuthenticateUniformFailure(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: newTestTokens(t)}

	createAlice(t, users)

	// Wrong password and unknown username must be indistinguishable.
	_, errWrongPass := auth.Authenticate(context.Background(), "alice", "wrong")
	_, errNoUser := auth.Authenticate(context.Background(), "ghost", "whatever")

	require.ErrorIs(t, errWrongPass, service.ErrInvalidCredentials)
	require.ErrorIs(t, errNoUser, service.ErrInvalidCredentials)
	require.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestAuthService_AuthenticateDisabledAccount(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: newTestTokens(t)}

	alice := createAlice(t, users)
	require.NoError(t, users.ChangeStatus(context.Background(), alice.ID, "BLOCKED"))

	_, err := auth.Authenticate(context.Background(), "alice", "s3cret-pass")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_Refresh(t *testing.T) {
	st := newTestStore(t)
	tokens := newTestTokens(t)
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: tokens}

	alice := createAlice(t, users)

	pair, err := auth.Authenticate(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	refreshed, err := auth.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, alice.ID, refreshed.UserID)
	require.NotEmpty(t, refreshed.AccessToken)

	// The refresh token is echoed, not rotated.
	require.Equal(t, pair.RefreshToken, refreshed.RefreshToken)

	require.True(t, tokens.IsValid(refreshed.AccessToken, tokenx.ClassAccess, alice))
}

func TestAuthService_RefreshRejections(t *testing.T) {
	st := newTestStore(t)
	tokens := newTestTokens(t)
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: tokens}

	createAlice(t, users)

	pair, err := auth.Authenticate(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	_, err = auth.Refresh(context.Background(), "")
	require.ErrorIs(t, err, service.ErrMissingToken)

	// An access token cannot stand in for a refresh token.
	_, err = auth.Refresh(context.Background(), pair.AccessToken)
	require.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = auth.Refresh(context.Background(), "garbage.token.value")
	require.ErrorIs(t, err, service.ErrInvalidToken)

	expired, err := tokens.Codec.Sign("alice", tokenx.ClassRefresh, time.Now().Add(-30*24*time.Hour), 7*24*time.Hour)
	require.NoError(t, err)
	_, err = auth.Refresh(context.Background(), expired)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_RefreshDisabledAccount(t *testing.T) {
	st := newTestStore(t)
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: newTestTokens(t)}

	alice := createAlice(t, users)

	pair, err := auth.Authenticate(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, users.ChangeStatus(context.Background(), alice.ID, "INACTIVE"))

	_, err = auth.Refresh(context.Background(), pair.RefreshToken)
	require.ErrorIs(t, err, service.ErrInvalidToken)
}
