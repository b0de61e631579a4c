package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/northloop/userd/internal/userd/service"
	"github.com/northloop/userd/internal/userd/store"
	"github.com/northloop/userd/pkg/apierr"
	"github.com/northloop/userd/pkg/httpx"
	"github.com/northloop/userd/pkg/slogx"
	"github.com/northloop/userd/pkg/tokenx"
)

// AuthContext resolves the Authorization header into a request principal.
// It never rejects a request: paths under a public prefix pass through
// untouched, and any failure along the way (missing header, bad token,
// unknown or disabled user) degrades to an anonymous request. Rejection
// is the job of RequireAuthenticated or the handler itself, so public
// endpoints stay reachable without credentials.
func AuthContext(tokens *service.TokenService, st store.Store, publicPrefixes []string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range publicPrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			if p, ok := resolvePrincipal(r, tokens, st); ok {
				ctx := withPrincipal(r.Context(), p)
				ctx = context.WithValue(ctx, httpx.CtxKeyUserID, p.User.ID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolvePrincipal walks the full validation path and reports whether a
// principal could be established. The context is only touched after
// every check has passed.
func resolvePrincipal(r *http.Request, tokens *service.TokenService, st store.Store) (Principal, bool) {
	token, ok := bearerToken(r)
	if !ok {
		return Principal{}, false
	}

	username, err := tokens.ExtractSubject(token, tokenx.ClassAccess)
	if err != nil {
		slogx.FromContext(r.Context()).Debug("access token rejected", "err", err)
		return Principal{}, false
	}

	u, err := st.Users().GetByUsername(r.Context(), username)
	if err != nil {
		return Principal{}, false
	}

	if !tokens.IsValid(token, tokenx.ClassAccess, u) {
		return Principal{}, false
	}
	return Principal{User: u}, true
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// RequireAuthenticated rejects requests that carry no principal with a
// 401. Handlers behind it can assume PrincipalFromContext succeeds.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			apierr.Write(w, r, apierr.New(apierr.KindInvalidToken, "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
