package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chat-relay/domain/event"
	"chat-relay/errors"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Session wraps one websocket connection. It is the connection's EventSink:
// events are encoded and queued on a buffered channel drained by the write
// pump, so fan-out from a room worker never blocks on a slow socket.
type Session struct {
	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger

	mu     sync.Mutex
	closed bool
}

func NewSession(conn *websocket.Conn, bufferSize int, log *slog.Logger) *Session {
	return &Session{
		conn: conn,
		send: make(chan []byte, bufferSize),
		log:  log,
	}
}

// Consume implements contract.EventSink. A full send buffer fails this one
// delivery only; the session stays up and later events may still get through.
func (s *Session) Consume(_ context.Context, e event.DomainEvent) error {
	payload, err := EncodeEvent(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.ErrSessionClosed
	}

	select {
	case s.send <- payload:
		return nil
	default:
		return errors.ErrSlowConsumer
	}
}

// ReadLoop pulls frames off the socket and hands them to handle until the
// peer goes away. It returns on any read error; the caller is responsible
// for running the cleanup path exactly once afterwards.
func (s *Session) ReadLoop(handle func(Frame)) {
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug("Unexpected websocket close", "err", err)
			}
			return
		}

		frame, err := DecodeFrame(raw)
		if err != nil {
			s.log.Debug("Discarding malformed frame", "err", err)
			continue
		}
		handle(frame)
	}
}

// WriteLoop drains the send buffer onto the socket and keeps the connection
// alive with pings. It exits when Close is called or the peer stops ponging.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close marks the session closed and releases the write pump. Safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}
