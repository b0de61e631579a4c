package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/northloop/userd/internal/userd/domain"
	userdhttp "github.com/northloop/userd/internal/userd/http"
	"github.com/northloop/userd/internal/userd/service"
	"github.com/northloop/userd/internal/userd/store"
	"github.com/northloop/userd/internal/userd/store/drivers/sqlite"
	"github.com/northloop/userd/pkg/cryptox"
	"github.com/northloop/userd/pkg/slogx"
	"github.com/northloop/userd/pkg/tokenx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "userd-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(dir + "/pepper")
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fixture struct {
	server *httptest.Server
	store  store.Store
	tokens *service.TokenService
	users  *service.UserService
	auth   *service.AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { st.Close() })

	codec, err := tokenx.NewCodec("userd-test",
		[]byte("access-secret-access-secret-1234"),
		[]byte("refresh-secret-refresh-secret-12"))
	require.NoError(t, err)

	tokens := &service.TokenService{
		Codec:      codec,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	users := &service.UserService{Store: st}
	auth := &service.AuthService{Store: st, Tokens: tokens}

	logger := slogx.New(slogx.Config{Service: "userd-test", Level: "error"})
	router := userdhttp.NewRouter("test", st, logger)
	router.TokenService = tokens
	router.AuthService = auth
	router.UserService = users
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &fixture{server: srv, store: st, tokens: tokens, users: users, auth: auth}
}

func (f *fixture) createUser(t *testing.T, username string) domain.User {
	t.Helper()
	u, err := f.users.Create(t.Context(), service.CreateUserInput{
		FullName:    "Test " + username,
		Email:       username + "@example.com",
		PhoneNumber: "04-" + username,
		Username:    username,
		Password:    "s3cret-pass",
		Gender:      "OTHER",
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, f.server.URL+path, buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func TestSignInFlow(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")

	resp := f.do(t, http.MethodPost, "/auth/access", "", map[string]string{
		"username": "alice",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.NotEmpty(t, body["accessToken"])
	require.NotEmpty(t, body["refreshToken"])
	require.NotEmpty(t, body["userId"])
}

func TestSignInRejections(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")

	resp := f.do(t, http.MethodPost, "/auth/access", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "/auth/access", body["path"])
	require.Equal(t, "Authentication Failed", body["error"])
	require.EqualValues(t, 401, body["status"])
	require.NotEmpty(t, body["timestamp"])

	resp = f.do(t, http.MethodPost, "/auth/access", "", map[string]string{
		"username": "alice",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefreshFlow(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")

	pair, err := f.auth.Authenticate(t.Context(), "alice", "s3cret-pass")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/auth/refresh", nil)
	require.NoError(t, err)
	req.Header.Set("x-token", pair.RefreshToken)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.NotEmpty(t, body["accessToken"])
	require.Equal(t, pair.RefreshToken, body["refreshToken"])
}

func TestRefreshRejections(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")

	pair, err := f.auth.Authenticate(t.Context(), "alice", "s3cret-pass")
	require.NoError(t, err)

	// No x-token header at all.
	resp := f.do(t, http.MethodPost, "/auth/refresh", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// An access token in the refresh slot.
	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/auth/refresh", nil)
	require.NoError(t, err)
	req.Header.Set("x-token", pair.AccessToken)
	r2, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer r2.Body.Close()
	require.Equal(t, http.StatusUnauthorized, r2.StatusCode)
}

func TestRegisterAndSignIn(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"fullName":    "Bob Brown",
		"email":       "bob@example.com",
		"phoneNumber": "0411222333",
		"username":    "bob",
		"password":    "hunter2-hunter2",
		"gender":      "MALE",
		"dateOfBirth": "1988-07-21",
		"type":        "ADMIN",
		"addresses": []map[string]any{{
			"street":      "1 Main St",
			"city":        "Brisbane",
			"country":     "AU",
			"addressType": 1,
		}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The requested type must not stick for self-registration.
	u, err := f.store.Users().GetByUsername(t.Context(), "bob")
	require.NoError(t, err)
	require.Equal(t, domain.TypeUser, u.Type)
	require.Equal(t, domain.StatusNone, u.Status)

	resp = f.do(t, http.MethodPost, "/auth/access", "", map[string]string{
		"username": "bob",
		"password": "hunter2-hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"email":       "not-an-email",
		"dateOfBirth": "21/07/1988",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, errs)
}

func TestRegisterRequiresPhoneNumber(t *testing.T) {
	f := newFixture(t)

	payload := func(username string) map[string]any {
		return map[string]any{
			"fullName": "No Phone " + username,
			"email":    username + "@example.com",
			"username": username,
			"password": "some-pass",
		}
	}

	resp := f.do(t, http.MethodPost, "/auth/register", "", payload("dave"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Contains(t, body["errors"], "phoneNumber must not be blank")

	// A second phone-less attempt must fail the same way, never a 409
	// from two blank phones colliding in the store.
	resp = f.do(t, http.MethodPost, "/auth/register", "", payload("erin"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/user"},
		{http.MethodGet, "/user/" + alice.ID},
		{http.MethodPost, "/user"},
		{http.MethodPut, "/user/" + alice.ID},
		{http.MethodPatch, "/user/" + alice.ID + "/status"},
		{http.MethodPatch, "/user/" + alice.ID + "/password"},
		{http.MethodDelete, "/user/" + alice.ID},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := f.do(t, tc.method, tc.path, "", nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGateDegradesToAnonymous(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")

	expired, err := f.tokens.Codec.Sign("alice", tokenx.ClassAccess, time.Now().Add(-time.Hour), 15*time.Minute)
	require.NoError(t, err)

	refresh, err := f.tokens.IssueRefreshToken(alice)
	require.NoError(t, err)

	ghost, err := f.tokens.Codec.Sign("ghost", tokenx.ClassAccess, time.Now(), 15*time.Minute)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired token":           expired,
		"garbage token":           "nonsense",
		"refresh token as bearer": refresh,
		"unknown subject":         ghost,
	} {
		t.Run(name, func(t *testing.T) {
			resp := f.do(t, http.MethodGet, "/user/"+alice.ID, token, nil)
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestGateRejectsTokenOfDisabledUser(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")

	pair, err := f.auth.Authenticate(t.Context(), "alice", "s3cret-pass")
	require.NoError(t, err)

	resp := f.do(t, http.MethodGet, "/user/"+alice.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, f.users.ChangeStatus(t.Context(), alice.ID, "BLOCKED"))

	resp = f.do(t, http.MethodGet, "/user/"+alice.ID, pair.AccessToken, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPublicPathsBypassGate(t *testing.T) {
	f := newFixture(t)

	// A malformed bearer token must not break public endpoints.
	resp := f.do(t, http.MethodGet, "/livez", "garbage", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "ok", body["status"])
}

func TestUserCRUDOverHTTP(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "admin")

	pair, err := f.auth.Authenticate(t.Context(), "admin", "s3cret-pass")
	require.NoError(t, err)
	token := pair.AccessToken

	// Create.
	resp := f.do(t, http.MethodPost, "/user", token, map[string]any{
		"fullName":    "Carol White",
		"email":       "carol@example.com",
		"phoneNumber": "0422333444",
		"username":    "carol",
		"password":    "carol-pass",
		"gender":      "FEMALE",
		"dateOfBirth": "1992-02-02",
		"type":        "MEMBER",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	carolID := created["data"].(map[string]any)["userId"].(string)

	// Read.
	resp = f.do(t, http.MethodGet, "/user/"+carolID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	detail := decodeBody(t, resp)["data"].(map[string]any)
	require.Equal(t, "carol", detail["username"])
	require.Equal(t, "MEMBER", detail["type"])
	require.Equal(t, "1992-02-02", detail["dateOfBirth"])

	// Update.
	resp = f.do(t, http.MethodPut, "/user/"+carolID, token, map[string]any{
		"fullName":    "Carol Green",
		"email":       "carol@example.com",
		"username":    "carol",
		"gender":      "FEMALE",
		"dateOfBirth": "1992-02-02",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Status.
	resp = f.do(t, http.MethodPatch, "/user/"+carolID+"/status?status=ACTIVE", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Password.
	resp = f.do(t, http.MethodPatch, "/user/"+carolID+"/password", token, map[string]string{
		"password":        "new-carol-pass",
		"confirmPassword": "new-carol-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete.
	resp = f.do(t, http.MethodDelete, "/user/"+carolID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/user/"+carolID, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserListOverHTTP(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "admin")
	for i := 0; i < 3; i++ {
		f.createUser(t, fmt.Sprintf("user%d", i))
	}

	pair, err := f.auth.Authenticate(t.Context(), "admin", "s3cret-pass")
	require.NoError(t, err)

	resp := f.do(t, http.MethodGet, "/user?page=1&pageSize=2&sort=username:desc", pair.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)["data"].(map[string]any)
	require.EqualValues(t, 4, data["total"])
	require.EqualValues(t, 2, data["totalPages"])
	users := data["users"].([]any)
	require.Len(t, users, 2)
	require.Equal(t, "user2", users[0].(map[string]any)["username"])

	resp = f.do(t, http.MethodGet, "/user?sort=password:asc", pair.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDuplicateRegistrationConflict(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")

	resp := f.do(t, http.MethodPost, "/auth/register", "", map[string]any{
		"fullName":    "Alice Again",
		"email":       "alice@example.com",
		"phoneNumber": "0433444555",
		"username":    "alice",
		"password":    "whatever-pass",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Duplicate Resource", body["error"])
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "alice")

	pair, err := f.auth.Authenticate(t.Context(), "alice", "s3cret-pass")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/auth/logout", nil)
	require.NoError(t, err)
	req.Header.Set("x-token", pair.RefreshToken)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Stateless tokens: the refresh token still works after logout.
	refreshed, err := f.auth.Refresh(t.Context(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)

	// Logout without a token is a 400.
	resp = f.do(t, http.MethodPost, "/auth/logout", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
