package domain

// Command is a room-scoped operation routed to that room's worker.
type Command interface {
	RoomID() RoomID
}

type JoinRoomCommand struct {
	Room RoomID
	Conn Connection
}

func (c JoinRoomCommand) RoomID() RoomID { return c.Room }

type LeaveRoomCommand struct {
	Room RoomID
	Conn Connection
}

func (c LeaveRoomCommand) RoomID() RoomID { return c.Room }

// PostMessageCommand carries no timestamp: the broadcaster stamps it.
type PostMessageCommand struct {
	Room    RoomID
	Conn    Connection
	Content string
}

func (c PostMessageCommand) RoomID() RoomID { return c.Room }

type TypingCommand struct {
	Room     RoomID
	Conn     Connection
	IsTyping bool
}

func (c TypingCommand) RoomID() RoomID { return c.Room }
