// Package client implements the presentation-side lifecycle of a relay
// connection: the join state machine and the typing debouncer. It holds no
// transport code of its own; cmd/client plugs in a websocket transport.
package client

import (
	"fmt"
	"math/rand"
	"sync"

	"chat-relay/infrastructure/ws"
)

type State string

const (
	Disconnected State = "disconnected"
	Connecting   State = "connecting"
	Joined       State = "joined"
)

// Transport is the client's view of its connection to the relay.
type Transport interface {
	Dial(username string) error
	Emit(event string, payload any) error
	Close() error
}

// StateMachine drives Disconnected -> Connecting -> Joined. The Joined
// transition is optimistic: it fires on transport connect and immediately
// emits join_room without waiting for any server acknowledgment, because
// the relay sends none. There is no automatic reconnect.
type StateMachine struct {
	mu          sync.Mutex
	state       State
	username    string
	defaultRoom string
	transport   Transport
}

func NewStateMachine(transport Transport, defaultRoom string) *StateMachine {
	return &StateMachine{
		state:       Disconnected,
		defaultRoom: defaultRoom,
		transport:   transport,
	}
}

// Join starts connecting under the chosen identity; an empty name gets a
// generated guest identity. Only valid from Disconnected.
func (m *StateMachine) Join(username string) error {
	m.mu.Lock()
	if m.state != Disconnected {
		m.mu.Unlock()
		return fmt.Errorf("join from state %q", m.state)
	}
	if username == "" {
		username = fmt.Sprintf("Guest%d", rand.Intn(1000))
	}
	m.username = username
	m.state = Connecting
	m.mu.Unlock()

	if err := m.transport.Dial(username); err != nil {
		m.mu.Lock()
		m.state = Disconnected
		m.mu.Unlock()
		return err
	}
	return m.OnConnected()
}

// OnConnected marks the machine Joined and issues the default-room join.
func (m *StateMachine) OnConnected() error {
	m.mu.Lock()
	if m.state != Connecting {
		m.mu.Unlock()
		return fmt.Errorf("connected from state %q", m.state)
	}
	m.state = Joined
	m.mu.Unlock()

	return m.transport.Emit(ws.EventJoinRoom, m.defaultRoom)
}

// Send emits a chat message to the default room.
func (m *StateMachine) Send(content string) error {
	m.mu.Lock()
	if m.state != Joined {
		m.mu.Unlock()
		return fmt.Errorf("send from state %q", m.state)
	}
	m.mu.Unlock()

	return m.transport.Emit(ws.EventSendMessage, ws.SendMessagePayload{
		RoomID:  m.defaultRoom,
		Content: content,
	})
}

// Leave is the explicit exit: emit leave_room, close the transport, return
// to Disconnected.
func (m *StateMachine) Leave() error {
	m.mu.Lock()
	if m.state != Joined {
		m.mu.Unlock()
		return fmt.Errorf("leave from state %q", m.state)
	}
	m.state = Disconnected
	m.mu.Unlock()

	_ = m.transport.Emit(ws.EventLeaveRoom, m.defaultRoom)
	return m.transport.Close()
}

// OnTransportLost handles abrupt connection loss: straight to Disconnected,
// no reconnect attempt.
func (m *StateMachine) OnTransportLost() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Disconnected
}

func (m *StateMachine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *StateMachine) Username() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.username
}

func (m *StateMachine) DefaultRoom() string { return m.defaultRoom }
