// Package rest exposes the persistence-backed collaborator API: room
// directory, message history, search, and credential issuance. It is bearer
// protected, unlike the websocket relay it sits next to.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"chat-relay/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// Bearer wraps a handler with JWT validation. The token protects the REST
// layer only; it has nothing to do with socket-level identity.
func Bearer(issuer *auth.TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		claims, err := issuer.Validate(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the validated claims stored by Bearer.
func ClaimsFrom(ctx context.Context) (*auth.CustomClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.CustomClaims)
	return claims, ok
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
		"data":   data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": message,
	})
}
