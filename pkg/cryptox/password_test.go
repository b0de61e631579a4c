package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Pin the pepper to a throwaway file so tests don't touch the default path.
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("s3cret-password", hash))
	require.ErrorIs(t, VerifyPassword("wrong-password", hash), ErrPasswordMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same-password")
	require.NoError(t, err)
	b, err := HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	for _, h := range []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!$aGFzaA",
	} {
		require.Error(t, VerifyPassword("pw", h), "hash %q", h)
	}
}

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	s2, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)

	require.NotEqual(t, s1, s2)
	require.Len(t, s1, 43) // 32 bytes base64url, no padding

	_, err = GenerateSecret(0)
	require.Error(t, err)
}
