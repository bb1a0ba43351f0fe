package event

import (
	"time"

	"github.com/google/uuid"

	"chat-relay/domain"
)

// DomainEvent is anything the relay fans out to room members.
type DomainEvent interface {
	RoomID() domain.RoomID
}

// UserJoined notifies the other members of a room that someone joined.
type UserJoined struct {
	Room     domain.RoomID
	Username string
	Message  string
}

func (e UserJoined) RoomID() domain.RoomID { return e.Room }

type UserLeft struct {
	Room     domain.RoomID
	Username string
	Message  string
}

func (e UserLeft) RoomID() domain.RoomID { return e.Room }

// MessageReceived is the broadcast envelope delivered to every member of the
// room, sender included.
type MessageReceived struct {
	ID      uuid.UUID
	Room    domain.RoomID
	Author  string
	Content string
	At      time.Time
}

func (e MessageReceived) RoomID() domain.RoomID { return e.Room }

// UserTyping is a stateless pass-through; the relay keeps no typing state.
type UserTyping struct {
	Room     domain.RoomID
	Username string
	IsTyping bool
}

func (e UserTyping) RoomID() domain.RoomID { return e.Room }

// DeliveryFailed goes back to the originating sender only, when at least one
// member could not be reached during a broadcast.
type DeliveryFailed struct {
	Room    domain.RoomID
	Message string
}

func (e DeliveryFailed) RoomID() domain.RoomID { return e.Room }
