// Package apierr maps the typed failures raised by services onto the
// stable JSON error body the API exposes. Services never format HTTP
// bodies themselves; handlers call Write at the boundary.
package apierr

import (
	"errors"
	"net/http"
	"time"

	"github.com/northloop/userd/pkg/httpx"
)

// Kind classifies a failure for the boundary layer.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindInvalidCredentials
	KindInvalidToken
	KindMissingToken
	KindAccessDenied
	KindNotFound
	KindAlreadyExists
)

// Error is a typed failure carrying its taxonomy kind. The message is the
// client-visible text; wrap internal detail with %w instead of putting it
// in Message.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Message + ": " + e.err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a new Error. The cause is never
// serialized to clients.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

// NewValidation bundles per-field failures into a single invalid-argument
// error carried through to the response's errors array.
func NewValidation(fieldErrors []string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: "request validation failed",
		Fields:  fieldErrors,
	}
}

// Response is the wire shape: {timestamp, status, path, error, message, errors?}.
type Response struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Path      string    `json:"path"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Errors    []string  `json:"errors,omitempty"`
}

func (k Kind) status() int {
	switch k {
	case KindInvalidArgument, KindMissingToken:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindInvalidToken:
		return http.StatusUnauthorized
	case KindAccessDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) title() string {
	switch k {
	case KindInvalidArgument:
		return "Invalid Argument"
	case KindInvalidCredentials:
		return "Authentication Failed"
	case KindInvalidToken:
		return "Invalid Token"
	case KindMissingToken:
		return "Missing Token"
	case KindAccessDenied:
		return "Access Denied"
	case KindNotFound:
		return "Not Found"
	case KindAlreadyExists:
		return "Duplicate Resource"
	default:
		return "Internal Server Error"
	}
}

// Write translates err into the stable error body. Unknown error types
// become a generic 500 with no internal detail leaked.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	kind := KindInternal
	message := "an unexpected error occurred"
	var fields []string

	var apiErr *Error
	if errors.As(err, &apiErr) {
		kind = apiErr.Kind
		message = apiErr.Message
		fields = apiErr.Fields
	}

	httpx.WriteJSON(w, kind.status(), Response{
		Timestamp: time.Now().UTC(),
		Status:    kind.status(),
		Path:      r.URL.Path,
		Error:     kind.title(),
		Message:   message,
		Errors:    fields,
	})
}
