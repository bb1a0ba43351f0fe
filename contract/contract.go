//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-relay/domain"
	"chat-relay/domain/event"
)

// Worker doesn't protect itself; supervision happens outside.
type Worker interface {
	Run(ctx context.Context) error
}

type WorkerName string

// GetWorkerName uses reflection to retrieve the type name of the worker,
// for logging and supervision purposes.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
	Wait()
}

// EventSink receives fanned-out events. A transport session is a sink; so are
// the permanent history and search sinks.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry owns connection sessions and the room membership table. One
// instance is constructed at startup and injected everywhere; there is no
// package-level singleton.
type IRegistry interface {
	Register(username string, sink EventSink) domain.Connection
	Unregister(id domain.ConnectionID) (domain.Connection, []domain.RoomID, bool)
	Join(id domain.ConnectionID, room domain.RoomID)
	Leave(id domain.ConnectionID, room domain.RoomID)
	Members(room domain.RoomID) []domain.ConnectionID
	SinksForRoom(room domain.RoomID, except ...domain.ConnectionID) []EventSink
	Sink(id domain.ConnectionID) (EventSink, bool)
}

type IOrchestrator interface {
	Register(username string, sink EventSink) domain.Connection
	Unregister(id domain.ConnectionID)
	Dispatch(cmd domain.Command)
	Start(ctx context.Context) error
	Stop()
}
