package domain

// RoomID is a free-form channel identifier. Rooms are created implicitly by
// the first join referencing the id and are never destroyed; an empty room is
// simply a room with zero members.
type RoomID string
