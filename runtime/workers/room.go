package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/observability"
)

// RoomWorker serializes every operation on one room: membership mutation and
// the fan-out it triggers happen on this goroutine, so notifications within a
// room are emitted in the exact order the commands were dispatched. The worker
// lives for as long as the process does, matching the rule that rooms are
// never destroyed.
type RoomWorker struct {
	room           domain.RoomID
	commands       chan domain.Command
	registry       contract.IRegistry
	permanentSinks []contract.EventSink
	stats          *observability.RelayStats
	log            *slog.Logger
	now            func() time.Time
}

func NewRoomWorker(
	room domain.RoomID,
	commands chan domain.Command,
	registry contract.IRegistry,
	permanentSinks []contract.EventSink,
	stats *observability.RelayStats,
	log *slog.Logger,
) *RoomWorker {
	return &RoomWorker{
		room:           room,
		commands:       commands,
		registry:       registry,
		permanentSinks: permanentSinks,
		stats:          stats,
		log:            log,
		now:            time.Now,
	}
}

// WithClock overrides the broadcast timestamp source.
func (w *RoomWorker) WithClock(now func() time.Time) *RoomWorker {
	w.now = now
	return w
}

func (w *RoomWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping room worker", "room", w.room)
			return nil
		case cmd, ok := <-w.commands:
			if !ok {
				return nil
			}
			w.handle(ctx, cmd)
		}
	}
}

func (w *RoomWorker) handle(ctx context.Context, cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.JoinRoomCommand:
		w.registry.Join(c.Conn.ID, w.room)
		w.stats.Joined()
		w.notifyOthers(ctx, c.Conn.ID, event.UserJoined{
			Room:     w.room,
			Username: c.Conn.Username,
			Message:  fmt.Sprintf("%s joined the room", c.Conn.Username),
		})

	case domain.LeaveRoomCommand:
		w.registry.Leave(c.Conn.ID, w.room)
		w.stats.Left()
		w.notifyOthers(ctx, c.Conn.ID, event.UserLeft{
			Room:     w.room,
			Username: c.Conn.Username,
			Message:  fmt.Sprintf("%s left the room", c.Conn.Username),
		})

	case domain.TypingCommand:
		w.notifyOthers(ctx, c.Conn.ID, event.UserTyping{
			Room:     w.room,
			Username: c.Conn.Username,
			IsTyping: c.IsTyping,
		})

	case domain.PostMessageCommand:
		w.broadcast(ctx, c)

	default:
		w.log.Warn("Unknown command for room", "room", w.room, "command", fmt.Sprintf("%T", cmd))
	}
}

// broadcast stamps the envelope and delivers it to every current member of
// the room, sender included. Delivery is at-most-once and fire-and-forget:
// a failed member is skipped, the remaining members still receive the
// message, and the sender alone gets a single error notification.
func (w *RoomWorker) broadcast(ctx context.Context, c domain.PostMessageCommand) {
	msg := event.MessageReceived{
		ID:      uuid.New(),
		Room:    w.room,
		Author:  c.Conn.Username,
		Content: c.Content,
		At:      w.now().UTC(),
	}

	failures := 0
	for _, sink := range w.registry.SinksForRoom(w.room) {
		if err := sink.Consume(ctx, msg); err != nil {
			failures++
			w.stats.DeliveryFailed()
		}
	}
	w.stats.Broadcast()

	if failures > 0 {
		if sink, ok := w.registry.Sink(c.Conn.ID); ok {
			_ = sink.Consume(ctx, event.DeliveryFailed{
				Room:    w.room,
				Message: "Failed to send message",
			})
		}
	}

	// Permanent sinks (history, search index) sit outside the live fan-out:
	// their failures never reach clients.
	for _, sink := range w.permanentSinks {
		if err := sink.Consume(ctx, msg); err != nil {
			w.log.Error("Permanent sink failed", "room", w.room, "err", err)
		}
	}
}

// notifyOthers delivers a presence or typing event to every member except the
// originator. A member that cannot be reached loses that one event; there is
// no retry and no error feedback.
func (w *RoomWorker) notifyOthers(ctx context.Context, origin domain.ConnectionID, e event.DomainEvent) {
	for _, sink := range w.registry.SinksForRoom(w.room, origin) {
		if err := sink.Consume(ctx, e); err != nil {
			w.stats.DeliveryFailed()
			w.log.Debug("Dropped event for one member", "room", w.room, "err", err)
		}
	}
}
