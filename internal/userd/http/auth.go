package http

import (
	"encoding/json"
	"net/http"

	"github.com/northloop/userd/internal/userd/service"
	"github.com/northloop/userd/pkg/apierr"
	"github.com/northloop/userd/pkg/httpx"
	"github.com/northloop/userd/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleAccess godoc
//
//	@Summary		Sign in
//	@Description	Exchanges a username/password pair for an access and refresh token.
//	@Description	Unknown usernames and wrong passwords produce the same 401 response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signInRequest	true	"Credentials"
//	@Success		200		{object}	domain.TokenPair
//	@Failure		400		{object}	apierr.Response	"Malformed request body"
//	@Failure		401		{object}	apierr.Response	"Invalid credentials"
//	@Router			/auth/access [post].
func (h *AuthHandler) HandleAccess(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.Write(w, r, apierr.New(apierr.KindInvalidArgument, "invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		apierr.Write(w, r, apierr.New(apierr.KindInvalidArgument, "username and password must not be blank"))
		return
	}

	pair, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleRefresh godoc
//
//	@Summary		Refresh access token
//	@Description	Validates the refresh token from the x-token header and returns a new
//	@Description	access token. The refresh token is returned unchanged.
//	@Tags			Auth
//	@Produce		json
//	@Param			x-token	header		string	true	"Refresh token"
//	@Success		200		{object}	domain.TokenPair
//	@Failure		400		{object}	apierr.Response	"Missing token"
//	@Failure		401		{object}	apierr.Response	"Invalid token"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	pair, err := h.AuthService.Refresh(r.Context(), r.Header.Get("x-token"))
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}

// HandleLogout godoc
//
//	@Summary		Sign out
//	@Description	Acknowledges a sign-out. Tokens are stateless and not tracked server
//	@Description	side, so the client must discard its copies; they stay verifiable
//	@Description	until their expiry passes.
//	@Tags			Auth
//	@Produce		json
//	@Param			x-token	header		string	true	"Refresh token"
//	@Success		200		{object}	Envelope
//	@Failure		400		{object}	apierr.Response	"Missing token"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-token") == "" {
		apierr.Write(w, r, service.ErrMissingToken)
		return
	}
	slogx.FromContext(r.Context()).Info("logout acknowledged")
	writeSuccess(w, http.StatusOK, "signed out", nil)
}

// HandleRegister godoc
//
//	@Summary		Register account
//	@Description	Self-service registration. The account starts in status NONE and may
//	@Description	sign in immediately.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		userRequest	true	"Profile"
//	@Success		201		{object}	Envelope
//	@Failure		400		{object}	apierr.Response	"Validation failure"
//	@Failure		409		{object}	apierr.Response	"Username or email taken"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUserRequest(r)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}
	// Self-registration cannot grant elevated types.
	in.Type = ""

	u, err := h.UserService.Create(r.Context(), in)
	if err != nil {
		apierr.Write(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", u.ID)
	writeSuccess(w, http.StatusCreated, "account created", map[string]string{"userId": u.ID})
}
