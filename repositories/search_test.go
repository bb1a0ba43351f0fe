package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *bluge.Writer {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })
	return writer
}

func Test_SearchIndex_Matches_Content_Within_Room(t *testing.T) {
	req := require.New(t)
	index := NewSearchIndex(openTestIndex(t), testLogger(), 10)
	at := time.Now().UTC()

	req.NoError(index.Index(DiskMessage{uuid.New(), "general", "Alice", "the badger sleeps tonight", at}))
	req.NoError(index.Index(DiskMessage{uuid.New(), "general", "Bob", "nothing to see here", at}))
	req.NoError(index.Index(DiskMessage{uuid.New(), "random", "Clara", "another badger elsewhere", at}))

	results, err := index.Search(context.Background(), "general", "badger")
	req.NoError(err)
	req.Len(results, 1)
	req.Equal("Alice", results[0].Author)
	req.Equal("the badger sleeps tonight", results[0].Content)
	req.Equal("general", results[0].Room)
	req.False(results[0].At.IsZero())
}

func Test_SearchIndex_No_Match(t *testing.T) {
	req := require.New(t)
	index := NewSearchIndex(openTestIndex(t), testLogger(), 10)

	req.NoError(index.Index(DiskMessage{uuid.New(), "general", "Alice", "hello world", time.Now().UTC()}))

	results, err := index.Search(context.Background(), "general", "badger")
	req.NoError(err)
	req.Empty(results)
}

func Test_SearchIndex_Reindexes_Same_ID(t *testing.T) {
	req := require.New(t)
	index := NewSearchIndex(openTestIndex(t), testLogger(), 10)
	id := uuid.New()
	at := time.Now().UTC()

	req.NoError(index.Index(DiskMessage{id, "general", "Alice", "draft message", at}))
	req.NoError(index.Index(DiskMessage{id, "general", "Alice", "final message", at}))

	results, err := index.Search(context.Background(), "general", "message")
	req.NoError(err)
	req.Len(results, 1)
	req.Equal("final message", results[0].Content)
	req.Equal(id, results[0].ID)
}
