package http

import (
	"context"

	"github.com/northloop/userd/internal/userd/domain"
)

type principalKey struct{}

// Principal is the authenticated caller attached to the request context
// by the AuthContext middleware. Requests that never pass validation
// simply carry no principal.
type Principal struct {
	User domain.User
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
