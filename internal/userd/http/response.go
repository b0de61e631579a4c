package http

import (
	"net/http"

	"github.com/northloop/userd/pkg/httpx"
)

// Envelope is the uniform success body for mutating and read endpoints.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeSuccess(w http.ResponseWriter, code int, message string, data any) {
	httpx.WriteJSON(w, code, Envelope{
		Status:  code,
		Message: message,
		Data:    data,
	})
}
