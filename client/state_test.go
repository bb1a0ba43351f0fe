package client

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-relay/infrastructure/ws"
)

type emitted struct {
	event   string
	payload any
}

type fakeTransport struct {
	dialedAs string
	dialErr  error
	emits    []emitted
	closed   bool
}

func (t *fakeTransport) Dial(username string) error {
	if t.dialErr != nil {
		return t.dialErr
	}
	t.dialedAs = username
	return nil
}

func (t *fakeTransport) Emit(event string, payload any) error {
	t.emits = append(t.emits, emitted{event: event, payload: payload})
	return nil
}

func (t *fakeTransport) Close() error {
	t.closed = true
	return nil
}

func TestStateMachine_Join_Goes_Optimistically_To_Joined(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	machine := NewStateMachine(transport, "general")

	req.Equal(Disconnected, machine.State())

	// When joining under a chosen name
	req.NoError(machine.Join("alice"))

	// Then the machine is Joined without waiting for any acknowledgment
	req.Equal(Joined, machine.State())
	req.Equal("alice", machine.Username())
	req.Equal("alice", transport.dialedAs)

	// And the join frame went out for the default room
	req.Len(transport.emits, 1)
	req.Equal(ws.EventJoinRoom, transport.emits[0].event)
	req.Equal("general", transport.emits[0].payload)
}

func TestStateMachine_Join_Empty_Name_Gets_Guest_Identity(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	machine := NewStateMachine(transport, "general")

	req.NoError(machine.Join(""))

	req.True(strings.HasPrefix(machine.Username(), "Guest"))
	req.Equal(machine.Username(), transport.dialedAs)
}

func TestStateMachine_Join_Twice_Is_Rejected(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	machine := NewStateMachine(transport, "general")

	req.NoError(machine.Join("alice"))
	req.Error(machine.Join("alice"))
}

func TestStateMachine_Dial_Failure_Returns_To_Disconnected(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{dialErr: fmt.Errorf("connection refused")}
	machine := NewStateMachine(transport, "general")

	req.Error(machine.Join("alice"))
	req.Equal(Disconnected, machine.State())

	// And the machine can try again
	transport.dialErr = nil
	req.NoError(machine.Join("alice"))
	req.Equal(Joined, machine.State())
}

func TestStateMachine_Send_Only_When_Joined(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	machine := NewStateMachine(transport, "general")

	req.Error(machine.Send("too early"))

	req.NoError(machine.Join("alice"))
	req.NoError(machine.Send("hello"))

	last := transport.emits[len(transport.emits)-1]
	req.Equal(ws.EventSendMessage, last.event)
	req.Equal(ws.SendMessagePayload{RoomID: "general", Content: "hello"}, last.payload)
}

func TestStateMachine_Leave_Emits_And_Closes(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	machine := NewStateMachine(transport, "general")
	req.NoError(machine.Join("alice"))

	req.NoError(machine.Leave())

	req.Equal(Disconnected, machine.State())
	req.True(transport.closed)
	last := transport.emits[len(transport.emits)-1]
	req.Equal(ws.EventLeaveRoom, last.event)
	req.Equal("general", last.payload)
}

func TestStateMachine_Transport_Loss_Disconnects_Without_Reconnect(t *testing.T) {
	req := require.New(t)
	transport := &fakeTransport{}
	machine := NewStateMachine(transport, "general")
	req.NoError(machine.Join("alice"))

	machine.OnTransportLost()

	req.Equal(Disconnected, machine.State())
	// No reconnect attempt: the transport saw exactly one dial
	req.Error(machine.Send("late"))
}
