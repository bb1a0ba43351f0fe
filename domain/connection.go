// Package domain contains core concepts of the relay.
// No runtime, network, or UI logic should be added here.
package domain

// ConnectionID identifies one live transport session.
type ConnectionID string

// Connection binds a transport session to a self-asserted identity.
// The identity comes verbatim from the client handshake, is never verified,
// may be empty, and is immutable for the lifetime of the connection.
type Connection struct {
	ID       ConnectionID
	Username string
}
