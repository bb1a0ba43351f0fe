package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is the in-flight broadcast envelope. The relay never persists it
// itself; the timestamp is assigned by the broadcaster at fan-out time, not
// by the sender.
type Message struct {
	ID        uuid.UUID
	Room      RoomID
	Author    string
	Content   string
	CreatedAt time.Time
}
