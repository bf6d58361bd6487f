package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marewang/final-bnn/internal/auth"
)

type contextKey string

const contextPrincipalKey contextKey = "principal"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func principalFromContext(ctx context.Context) (auth.Principal, error) {
	principal, ok := ctx.Value(contextPrincipalKey).(auth.Principal)
	if !ok || principal.UID < 1 {
		return auth.Principal{}, errors.New("missing principal")
	}
	return principal, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// Healthz reports process liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
