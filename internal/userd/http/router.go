package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/northloop/userd/internal/userd/service"
	"github.com/northloop/userd/internal/userd/store"
	"github.com/northloop/userd/pkg/httpx"
	"github.com/northloop/userd/pkg/slogx"

	_ "github.com/northloop/userd/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// PublicPrefixes are the paths the authorization gate skips entirely.
var PublicPrefixes = []string{"/auth/", "/livez", "/readyz", "/swagger/"}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	TokenService *service.TokenService
	AuthService  *service.AuthService
	UserService  *service.UserService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	// The gate runs globally so every protected handler sees a resolved
	// principal; it never rejects on its own.
	r.middlewares = append(r.middlewares,
		AuthContext(r.TokenService, r.store, PublicPrefixes))

	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			userd User Management API
//	@version		0.1.0
//	@description	User management backend with stateless JWT authentication. Access and
//	@description	refresh tokens are HS256-signed, class-tagged, and verified without any
//	@description	server-side session state.
//
//	@contact.name	Northloop Team
//	@contact.url	https://github.com/northloop/userd
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
	}

	// Credential and token endpoints take a strict per-IP limit to slow
	// down guessing.
	r.Mux.Handle("POST /auth/access",
		httpx.Chain(http.HandlerFunc(h.HandleAccess),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		))
}

func (r *Router) registerUsers() {
	h := &UserHandler{UserService: r.UserService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			RequireAuthenticated,
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /user", secured(h.HandleCreate))
	r.Mux.Handle("GET /user", secured(h.HandleList))
	r.Mux.Handle("GET /user/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /user/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("PATCH /user/{id}/status", secured(h.HandleChangeStatus))
	r.Mux.Handle("PATCH /user/{id}/password", secured(h.HandleChangePassword))
	r.Mux.Handle("DELETE /user/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
