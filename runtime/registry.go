package runtime

import (
	"sync"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
)

type Set map[domain.ConnectionID]struct{}

type session struct {
	conn  domain.Connection
	sink  contract.EventSink
	rooms map[domain.RoomID]struct{}
}

// Registry owns the connection sessions and the room membership table.
// Membership for one room is only ever mutated by that room's worker, which
// gives per-room operations the exact order they were dispatched in; the lock
// is here so that snapshots taken from other goroutines (REST, tests) stay
// consistent.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[domain.ConnectionID]*session
	roomMembers map[domain.RoomID]Set
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[domain.ConnectionID]*session),
		roomMembers: make(map[domain.RoomID]Set),
	}
}

// Register binds a sink to a fresh connection id. The username is taken
// verbatim from the handshake; an empty string is accepted as-is.
// Register always succeeds.
func (r *Registry) Register(username string, sink contract.EventSink) domain.Connection {
	conn := domain.Connection{
		ID:       domain.ConnectionID(uuid.NewString()),
		Username: username,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[conn.ID] = &session{
		conn:  conn,
		sink:  sink,
		rooms: make(map[domain.RoomID]struct{}),
	}
	return conn
}

// Unregister removes the session and reports the rooms it still belonged to,
// so the caller can run the leave path for each of them. After Unregister the
// sink is no longer resolvable: a broadcast processed afterwards can never
// reach the departed connection, even before its leave commands are handled.
func (r *Registry) Unregister(id domain.ConnectionID) (domain.Connection, []domain.RoomID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Connection{}, nil, false
	}
	delete(r.sessions, id)

	rooms := make([]domain.RoomID, 0, len(s.rooms))
	for room := range s.rooms {
		rooms = append(rooms, room)
	}
	return s.conn, rooms, true
}

// Join inserts the connection into the room's member set, creating the room
// entry on first reference. Joining twice is a no-op; joining after the
// session is gone (disconnect race) is ignored.
func (r *Registry) Join(id domain.ConnectionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return
	}
	s.rooms[room] = struct{}{}

	if _, ok := r.roomMembers[room]; !ok {
		r.roomMembers[room] = make(Set)
	}
	r.roomMembers[room][id] = struct{}{}
}

// Leave removes the connection from the room's member set. Leaving a room the
// connection is not in, or one that does not exist, is a no-op. The room entry
// itself is kept even when empty: rooms are never destroyed.
func (r *Registry) Leave(id domain.ConnectionID, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		delete(s.rooms, room)
	}
	if members, ok := r.roomMembers[room]; ok {
		delete(members, id)
	}
}

// Members returns a point-in-time snapshot of the room's member set.
func (r *Registry) Members(room domain.RoomID) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[room]
	if !ok {
		return nil
	}
	ids := make([]domain.ConnectionID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

// SinksForRoom resolves the room's current members into their live sinks,
// skipping any ids in except. Members whose session vanished in between are
// silently dropped.
func (r *Registry) SinksForRoom(room domain.RoomID, except ...domain.ConnectionID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[room]
	if !ok {
		return nil
	}

	excluded := make(map[domain.ConnectionID]struct{}, len(except))
	for _, id := range except {
		excluded[id] = struct{}{}
	}

	var sinks []contract.EventSink
	for id := range members {
		if _, skip := excluded[id]; skip {
			continue
		}
		if s, exists := r.sessions[id]; exists {
			sinks = append(sinks, s.sink)
		}
	}
	return sinks
}

// Sink resolves a single connection's sink.
func (r *Registry) Sink(id domain.ConnectionID) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return s.sink, true
}
