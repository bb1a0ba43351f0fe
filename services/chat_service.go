//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"chat-relay/contract"
	"chat-relay/domain"
)

// IChatService is the relay surface the websocket transport drives. Every
// room-scoped call is fire-and-forget: it enqueues a command on the room's
// worker and returns immediately.
type IChatService interface {
	Connect(username string, sink contract.EventSink) domain.Connection
	Disconnect(id domain.ConnectionID)
	JoinRoom(conn domain.Connection, room domain.RoomID)
	LeaveRoom(conn domain.Connection, room domain.RoomID)
	SendMessage(conn domain.Connection, room domain.RoomID, content string)
	TypingStart(conn domain.Connection, room domain.RoomID)
	TypingStop(conn domain.Connection, room domain.RoomID)
}

type ChatService struct {
	orchestrator contract.IOrchestrator
}

func NewChatService(orchestrator contract.IOrchestrator) *ChatService {
	return &ChatService{orchestrator: orchestrator}
}

func (s *ChatService) Connect(username string, sink contract.EventSink) domain.Connection {
	return s.orchestrator.Register(username, sink)
}

// Disconnect is the sole cleanup path; the transport must call it on both
// graceful disconnect and abrupt loss, or membership entries leak.
func (s *ChatService) Disconnect(id domain.ConnectionID) {
	s.orchestrator.Unregister(id)
}

func (s *ChatService) JoinRoom(conn domain.Connection, room domain.RoomID) {
	s.orchestrator.Dispatch(domain.JoinRoomCommand{Room: room, Conn: conn})
}

func (s *ChatService) LeaveRoom(conn domain.Connection, room domain.RoomID) {
	s.orchestrator.Dispatch(domain.LeaveRoomCommand{Room: room, Conn: conn})
}

func (s *ChatService) SendMessage(conn domain.Connection, room domain.RoomID, content string) {
	s.orchestrator.Dispatch(domain.PostMessageCommand{Room: room, Conn: conn, Content: content})
}

func (s *ChatService) TypingStart(conn domain.Connection, room domain.RoomID) {
	s.orchestrator.Dispatch(domain.TypingCommand{Room: room, Conn: conn, IsTyping: true})
}

func (s *ChatService) TypingStop(conn domain.Connection, room domain.RoomID) {
	s.orchestrator.Dispatch(domain.TypingCommand{Room: room, Conn: conn, IsTyping: false})
}
