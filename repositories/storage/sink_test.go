package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/mocks"
	"chat-relay/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_DiskSink_Persists_Broadcasts_Only(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repositoryMock := mocks.NewMockIMessageRepository(ctrl)

	id := uuid.New()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Then exactly the flattened envelope is stored
	repositoryMock.EXPECT().
		StoreMessage(repositories.DiskMessage{
			ID: id, Room: "general", Author: "alice", Content: "hello", At: at,
		}).
		Return(nil).
		Times(1)

	sink := NewDiskSink(repositoryMock, testLogger())

	// When a broadcast and a presence event flow through
	err := sink.Consume(context.Background(), event.MessageReceived{
		ID: id, Room: domain.RoomID("general"), Author: "alice", Content: "hello", At: at,
	})
	req.NoError(err)

	err = sink.Consume(context.Background(), event.UserJoined{
		Room: domain.RoomID("general"), Username: "bob", Message: "bob joined the room",
	})
	req.NoError(err)
}

func Test_SearchSink_Indexes_Broadcasts_Only(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	indexMock := mocks.NewMockISearchIndex(ctrl)

	id := uuid.New()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	indexMock.EXPECT().
		Index(repositories.DiskMessage{
			ID: id, Room: "general", Author: "alice", Content: "hello", At: at,
		}).
		Return(nil).
		Times(1)

	sink := NewSearchSink(indexMock, testLogger())

	err := sink.Consume(context.Background(), event.MessageReceived{
		ID: id, Room: domain.RoomID("general"), Author: "alice", Content: "hello", At: at,
	})
	req.NoError(err)

	err = sink.Consume(context.Background(), event.UserTyping{
		Room: domain.RoomID("general"), Username: "bob", IsTyping: true,
	})
	req.NoError(err)
}
