package rest

import (
	"net/http"

	"chat-relay/auth"
)

// NewRouter wires the REST routes and the websocket endpoint onto one mux.
// Auth endpoints are open; everything else under /api requires a bearer token.
func NewRouter(api *API, issuer *auth.TokenIssuer, wsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.Handle("GET /ws", wsHandler)

	mux.HandleFunc("POST /api/auth/register", api.RegisterHandler)
	mux.HandleFunc("POST /api/auth/login", api.LoginHandler)

	mux.Handle("GET /api/rooms", Bearer(issuer, http.HandlerFunc(api.ListRoomsHandler)))
	mux.Handle("POST /api/rooms", Bearer(issuer, http.HandlerFunc(api.CreateRoomHandler)))
	mux.Handle("GET /api/messages/{roomId}", Bearer(issuer, http.HandlerFunc(api.MessagesHandler)))
	mux.Handle("GET /api/messages/{roomId}/search", Bearer(issuer, http.HandlerFunc(api.SearchHandler)))

	return mux
}
