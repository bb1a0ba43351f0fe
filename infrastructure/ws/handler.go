package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"chat-relay/domain"
	"chat-relay/services"
)

// Handler upgrades HTTP requests at the websocket endpoint and runs one
// session per connection. The handshake carries a plain-text username as a
// query parameter; it is unauthenticated and unverified by design, and an
// absent username simply yields an empty identity.
type Handler struct {
	chat       services.IChatService
	log        *slog.Logger
	bufferSize int
	upgrader   websocket.Upgrader
}

func NewHandler(chat services.IChatService, log *slog.Logger, bufferSize int) *Handler {
	return &Handler{
		chat:       chat,
		log:        log,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "err", err)
		return
	}

	username := r.URL.Query().Get("username")
	session := NewSession(conn, h.bufferSize, h.log)
	connection := h.chat.Connect(username, session)

	go session.WriteLoop()

	session.ReadLoop(func(frame Frame) {
		h.dispatch(connection, frame)
	})

	// Sole cleanup path: fires on graceful close and abrupt transport loss
	// alike, and runs the leave path for every joined room.
	h.chat.Disconnect(connection.ID)
	session.Close()
}

func (h *Handler) dispatch(conn domain.Connection, frame Frame) {
	switch frame.Event {
	case EventJoinRoom:
		if room, ok := decodeRoomID(frame.Data); ok {
			h.chat.JoinRoom(conn, room)
		}
	case EventLeaveRoom:
		if room, ok := decodeRoomID(frame.Data); ok {
			h.chat.LeaveRoom(conn, room)
		}
	case EventSendMessage:
		var payload SendMessagePayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			h.log.Debug("Malformed send_message payload", "err", err)
			return
		}
		h.chat.SendMessage(conn, domain.RoomID(payload.RoomID), payload.Content)
	case EventTypingStart:
		if room, ok := decodeRoomID(frame.Data); ok {
			h.chat.TypingStart(conn, room)
		}
	case EventTypingStop:
		if room, ok := decodeRoomID(frame.Data); ok {
			h.chat.TypingStop(conn, room)
		}
	default:
		h.log.Debug("Unknown event", "event", frame.Event)
	}
}

func decodeRoomID(data json.RawMessage) (domain.RoomID, bool) {
	var room string
	if err := json.Unmarshal(data, &room); err != nil {
		return "", false
	}
	return domain.RoomID(room), true
}
