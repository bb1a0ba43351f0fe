// Package storage holds the permanent event sinks sitting behind the relay:
// everything broadcast to a room also flows here, without ever blocking or
// failing the live fan-out.
package storage

import (
	"context"
	"log/slog"

	"chat-relay/domain/event"
	"chat-relay/repositories"
)

// DiskSink persists broadcast envelopes so the history API can page through
// them later. Presence and typing events are deliberately not persisted.
type DiskSink struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.IMessageRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(_ context.Context, e event.DomainEvent) error {
	msg, ok := e.(event.MessageReceived)
	if !ok {
		return nil
	}
	return d.repository.StoreMessage(toDiskMessage(msg))
}

// SearchSink feeds the same envelopes into the full-text index.
type SearchSink struct {
	index repositories.ISearchIndex
	log   *slog.Logger
}

func NewSearchSink(index repositories.ISearchIndex, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	msg, ok := e.(event.MessageReceived)
	if !ok {
		return nil
	}
	return s.index.Index(toDiskMessage(msg))
}

func toDiskMessage(e event.MessageReceived) repositories.DiskMessage {
	return repositories.DiskMessage{
		ID:      e.ID,
		Room:    string(e.Room),
		Author:  e.Author,
		Content: e.Content,
		At:      e.At,
	}
}
