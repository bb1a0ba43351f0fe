// Package observability aggregates relay counters for logging and debugging.
package observability

import "sync/atomic"

// RelayStats counts relay activity. All methods are safe for concurrent use;
// counters only ever grow.
type RelayStats struct {
	connectionsOpened uint64
	connectionsClosed uint64
	joins             uint64
	leaves            uint64
	broadcasts        uint64
	deliveriesFailed  uint64
	commandsDropped   uint64
}

// StatsSnapshot is a point-in-time copy of every counter.
type StatsSnapshot struct {
	ConnectionsOpened uint64 `json:"connections_opened"`
	ConnectionsClosed uint64 `json:"connections_closed"`
	Joins             uint64 `json:"joins"`
	Leaves            uint64 `json:"leaves"`
	Broadcasts        uint64 `json:"broadcasts"`
	DeliveriesFailed  uint64 `json:"deliveries_failed"`
	CommandsDropped   uint64 `json:"commands_dropped"`
}

func NewRelayStats() *RelayStats { return &RelayStats{} }

func (s *RelayStats) ConnectionOpened() { atomic.AddUint64(&s.connectionsOpened, 1) }
func (s *RelayStats) ConnectionClosed() { atomic.AddUint64(&s.connectionsClosed, 1) }
func (s *RelayStats) Joined()           { atomic.AddUint64(&s.joins, 1) }
func (s *RelayStats) Left()             { atomic.AddUint64(&s.leaves, 1) }
func (s *RelayStats) Broadcast()        { atomic.AddUint64(&s.broadcasts, 1) }
func (s *RelayStats) DeliveryFailed()   { atomic.AddUint64(&s.deliveriesFailed, 1) }
func (s *RelayStats) CommandDropped()   { atomic.AddUint64(&s.commandsDropped, 1) }

func (s *RelayStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		ConnectionsOpened: atomic.LoadUint64(&s.connectionsOpened),
		ConnectionsClosed: atomic.LoadUint64(&s.connectionsClosed),
		Joins:             atomic.LoadUint64(&s.joins),
		Leaves:            atomic.LoadUint64(&s.leaves),
		Broadcasts:        atomic.LoadUint64(&s.broadcasts),
		DeliveriesFailed:  atomic.LoadUint64(&s.deliveriesFailed),
		CommandsDropped:   atomic.LoadUint64(&s.commandsDropped),
	}
}
