// Package runtime routes relay commands to per-room workers and owns the
// connection registry. It orchestrates the system without containing business
// logic or domain rules.
package runtime

import (
	"context"
	"log/slog"
	"sync"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/observability"
	"chat-relay/runtime/workers"
)

// Orchestrator creates one command channel and one supervised worker per room,
// on first reference. Room workers are never torn down; an empty room keeps
// its worker, which is the documented resource cost of implicit room creation.
type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	registry       contract.IRegistry
	supervisor     contract.ISupervisor
	permanentSinks []contract.EventSink
	stats          *observability.RelayStats
	rooms          map[domain.RoomID]chan domain.Command
	bufferSize     int
	ctx            context.Context
	cancel         context.CancelFunc
}

func NewOrchestrator(
	log *slog.Logger,
	registry contract.IRegistry,
	supervisor contract.ISupervisor,
	stats *observability.RelayStats,
	bufferSize int,
) *Orchestrator {
	return &Orchestrator{
		log:        log,
		registry:   registry,
		supervisor: supervisor,
		stats:      stats,
		rooms:      make(map[domain.RoomID]chan domain.Command),
		bufferSize: bufferSize,
	}
}

// AddPermanentSinks attaches sinks that receive every broadcast envelope in
// every room, independently of the live member fan-out. Must be called before
// Start.
func (o *Orchestrator) AddPermanentSinks(sinks ...contract.EventSink) {
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Start binds the orchestrator to its supervision context. Room workers
// spawned afterwards inherit it.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ctx, o.cancel = context.WithCancel(ctx)
	return nil
}

// Stop cancels all supervised room workers and waits for them to drain.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.mu.Lock()
	cancel := o.cancel
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	o.supervisor.Stop()
	o.supervisor.Wait()
}

// Register binds a transport sink to a new connection. Identity is whatever
// the handshake asserted, empty included.
func (o *Orchestrator) Register(username string, sink contract.EventSink) domain.Connection {
	conn := o.registry.Register(username, sink)
	o.stats.ConnectionOpened()
	o.log.Info("User connected", "username", conn.Username, "connection", conn.ID)
	return conn
}

// Unregister is the sole cleanup path for a connection. It runs the leave path
// for every room the connection belonged to, exactly as if the client had
// called leave itself; it fires on both graceful disconnect and transport
// loss. A connection that was typing when it vanished emits no compensating
// typing-stop.
func (o *Orchestrator) Unregister(id domain.ConnectionID) {
	conn, rooms, ok := o.registry.Unregister(id)
	if !ok {
		return
	}
	o.stats.ConnectionClosed()
	o.log.Info("User disconnected", "username", conn.Username, "connection", conn.ID)

	for _, room := range rooms {
		o.Dispatch(domain.LeaveRoomCommand{Room: room, Conn: conn})
	}
}

// Dispatch routes a command to its room's worker, creating the room's channel
// and worker on first reference. The send is non-blocking: a full room channel
// drops the command, keeping the relay best-effort end to end.
func (o *Orchestrator) Dispatch(cmd domain.Command) {
	ch := o.roomChannel(cmd.RoomID())

	select {
	case ch <- cmd:
	default:
		o.stats.CommandDropped()
		o.log.Warn("Room channel full, dropping command", "room", cmd.RoomID())
	}
}

func (o *Orchestrator) roomChannel(room domain.RoomID) chan domain.Command {
	o.mu.Lock()
	defer o.mu.Unlock()

	if ch, ok := o.rooms[room]; ok {
		return ch
	}

	ctx := o.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	ch := make(chan domain.Command, o.bufferSize)
	worker := workers.NewRoomWorker(room, ch, o.registry, o.permanentSinks, o.stats, o.log)
	o.supervisor.Start(ctx, worker)
	o.rooms[room] = ch
	o.log.Debug("Room created", "room", room)
	return ch
}
