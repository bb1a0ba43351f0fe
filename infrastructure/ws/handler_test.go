package ws_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"chat-relay/infrastructure/ws"
	"chat-relay/observability"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/services"
)

const readTimeout = 3 * time.Second

func startRelay(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := runtime.NewRegistry()
	stats := observability.NewRelayStats()
	orchestrator := runtime.NewOrchestrator(log, registry, workers.NewSupervisor(log), stats, 64)
	require.NoError(t, orchestrator.Start(context.Background()))
	t.Cleanup(orchestrator.Stop)

	handler := ws.NewHandler(services.NewChatService(orchestrator), log, 64)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, username string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?username=" + username
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, payload any) {
	t.Helper()
	raw, err := ws.EncodeFrame(event, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, raw))
}

// readUntil drains frames until one matches the wanted event name, failing
// the test if it never arrives.
func readUntil(t *testing.T, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(readTimeout)))
	for {
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %q", event)
		frame, err := ws.DecodeFrame(raw)
		require.NoError(t, err)
		if frame.Event == event {
			return frame.Data
		}
	}
}

func TestRelay_EndToEnd_Join_Broadcast_Leave(t *testing.T) {
	req := require.New(t)
	server := startRelay(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")

	// Given alice in the room first
	send(t, alice, ws.EventJoinRoom, "general")
	time.Sleep(100 * time.Millisecond)

	// When bob joins, alice is notified
	send(t, bob, ws.EventJoinRoom, "general")

	var joined ws.PresencePayload
	req.NoError(json.Unmarshal(readUntil(t, alice, ws.EventUserJoined), &joined))
	req.Equal("bob", joined.Username)
	req.Equal("bob joined the room", joined.Message)

	// When alice posts a message, both members receive the same envelope
	send(t, alice, ws.EventSendMessage, ws.SendMessagePayload{RoomID: "general", Content: "hello bob"})

	for _, conn := range []*websocket.Conn{alice, bob} {
		var msg ws.ReceiveMessagePayload
		req.NoError(json.Unmarshal(readUntil(t, conn, ws.EventReceiveMessage), &msg))
		req.Equal("hello bob", msg.Content)
		req.Equal("alice", msg.User.Username)
		_, err := time.Parse("2006-01-02T15:04:05.000Z", msg.CreatedAt)
		req.NoError(err)
	}

	// When bob's socket drops, alice gets the departure
	req.NoError(bob.Close())
	var left ws.PresencePayload
	req.NoError(json.Unmarshal(readUntil(t, alice, ws.EventUserLeft), &left))
	req.Equal("bob", left.Username)
	req.Equal("bob left the room", left.Message)
}

func TestRelay_EndToEnd_Typing_Relay(t *testing.T) {
	req := require.New(t)
	server := startRelay(t)

	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")
	send(t, alice, ws.EventJoinRoom, "general")
	time.Sleep(100 * time.Millisecond)
	send(t, bob, ws.EventJoinRoom, "general")
	readUntil(t, alice, ws.EventUserJoined)

	// When alice types and goes idle
	send(t, alice, ws.EventTypingStart, "general")
	send(t, alice, ws.EventTypingStop, "general")

	// Then bob sees the pair, in order
	var typing ws.UserTypingPayload
	req.NoError(json.Unmarshal(readUntil(t, bob, ws.EventUserTyping), &typing))
	req.Equal("alice", typing.Username)
	req.True(typing.IsTyping)

	req.NoError(json.Unmarshal(readUntil(t, bob, ws.EventUserTyping), &typing))
	req.False(typing.IsTyping)
}

func TestRelay_EndToEnd_Messages_Scoped_To_Room(t *testing.T) {
	req := require.New(t)
	server := startRelay(t)

	alice := dial(t, server, "alice")
	carol := dial(t, server, "carol")
	send(t, alice, ws.EventJoinRoom, "general")
	send(t, carol, ws.EventJoinRoom, "random")

	send(t, alice, ws.EventSendMessage, ws.SendMessagePayload{RoomID: "general", Content: "private to general"})

	// alice, a member, receives her own message back
	var msg ws.ReceiveMessagePayload
	req.NoError(json.Unmarshal(readUntil(t, alice, ws.EventReceiveMessage), &msg))
	req.Equal("private to general", msg.Content)

	// carol, in another room, must see nothing
	req.NoError(carol.SetReadDeadline(time.Now().Add(300 * time.Millisecond)))
	_, _, err := carol.ReadMessage()
	req.Error(err)
}
