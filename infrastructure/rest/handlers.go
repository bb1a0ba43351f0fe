package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"chat-relay/auth"
	"chat-relay/domain"
	relayerrors "chat-relay/errors"
	"chat-relay/services"
)

type API struct {
	auth    services.IAuthService
	history services.IHistoryService
	log     *slog.Logger
}

func NewAPI(authService services.IAuthService, history services.IHistoryService, log *slog.Logger) *API {
	return &API{auth: authService, history: history, log: log}
}

type userDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type messageDTO struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	User      struct {
		Username string `json:"username"`
	} `json:"user"`
	CreatedAt string `json:"createdAt"`
}

func toMessageDTO(m domain.Message) messageDTO {
	dto := messageDTO{
		ID:        m.ID.String(),
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	dto.User.Username = m.Author
	return dto
}

func (a *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	creds, err := a.auth.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, relayerrors.ErrUserAlreadyExists):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, relayerrors.ErrInvalidRegister):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			a.log.Error("Register failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": creds.Token,
		"user":  userDTO{ID: creds.UserID, Email: creds.Email, Username: creds.Username},
	})
}

func (a *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	creds, err := a.auth.Login(req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": creds.Token,
		"user":  userDTO{ID: creds.UserID, Email: creds.Email, Username: creds.Username},
	})
}

func (a *API) ListRoomsHandler(w http.ResponseWriter, _ *http.Request) {
	rooms, err := a.history.ListRooms()
	if err != nil {
		a.log.Error("Listing rooms failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to list rooms")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (a *API) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := a.history.CreateRoom(req.Name)
	if err != nil {
		if errors.Is(err, relayerrors.ErrRoomNameRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		a.log.Error("Creating room failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"room": room})
}

// MessagesHandler pages through a room's history, newest first. The cursor
// query parameter resumes a previous page.
func (a *API) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(r.PathValue("roomId"))

	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	messages, next, err := a.history.GetMessages(room, cursor)
	if err != nil {
		a.log.Error("Fetching messages failed", "room", room, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	data := map[string]any{
		"messages": lo.Map(messages, func(m domain.Message, _ int) messageDTO { return toMessageDTO(m) }),
	}
	if next != nil {
		data["cursor"] = *next
	}
	writeJSON(w, http.StatusOK, data)
}

func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	room := domain.RoomID(r.PathValue("roomId"))
	terms := r.URL.Query().Get("q")
	if terms == "" {
		writeError(w, http.StatusBadRequest, "Missing query parameter q")
		return
	}

	messages, err := a.history.SearchMessages(r.Context(), room, terms)
	if err != nil {
		a.log.Error("Search failed", "room", room, "err", err)
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": lo.Map(messages, func(m domain.Message, _ int) messageDTO { return toMessageDTO(m) }),
	})
}
