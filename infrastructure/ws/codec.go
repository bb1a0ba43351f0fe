// Package ws is the websocket transport: the handshake endpoint, one session
// per connection, and the JSON event codec shared with clients.
package ws

import (
	"encoding/json"
	"fmt"

	"chat-relay/domain/event"
)

// Event names, client to server.
const (
	EventJoinRoom    = "join_room"
	EventLeaveRoom   = "leave_room"
	EventSendMessage = "send_message"
	EventTypingStart = "typing_start"
	EventTypingStop  = "typing_stop"
)

// Event names, server to client.
const (
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventReceiveMessage = "receive_message"
	EventUserTyping     = "user_typing"
	EventError          = "error"
)

// createdAt timestamps are ISO-8601 with millisecond precision, always UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Frame is one websocket message in either direction.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type SendMessagePayload struct {
	RoomID  string `json:"roomId"`
	Content string `json:"content"`
}

type PresencePayload struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type MessageUser struct {
	Username string `json:"username"`
}

type ReceiveMessagePayload struct {
	Content   string      `json:"content"`
	User      MessageUser `json:"user"`
	CreatedAt string      `json:"createdAt"`
}

type UserTypingPayload struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// EncodeFrame marshals an outbound frame.
func EncodeFrame(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: name, Data: data})
}

// EncodeEvent maps a domain event onto its wire frame.
func EncodeEvent(e event.DomainEvent) ([]byte, error) {
	switch evt := e.(type) {
	case event.UserJoined:
		return EncodeFrame(EventUserJoined, PresencePayload{Username: evt.Username, Message: evt.Message})
	case event.UserLeft:
		return EncodeFrame(EventUserLeft, PresencePayload{Username: evt.Username, Message: evt.Message})
	case event.MessageReceived:
		return EncodeFrame(EventReceiveMessage, ReceiveMessagePayload{
			Content:   evt.Content,
			User:      MessageUser{Username: evt.Author},
			CreatedAt: evt.At.UTC().Format(timestampLayout),
		})
	case event.UserTyping:
		return EncodeFrame(EventUserTyping, UserTypingPayload{Username: evt.Username, IsTyping: evt.IsTyping})
	case event.DeliveryFailed:
		return EncodeFrame(EventError, ErrorPayload{Message: evt.Message})
	default:
		return nil, fmt.Errorf("no wire encoding for event %T", e)
	}
}

// DecodeFrame parses an inbound websocket message.
func DecodeFrame(raw []byte) (Frame, error) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return Frame{}, err
	}
	return frame, nil
}
