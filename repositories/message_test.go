package repositories

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func Test_Record_Multiple_Messages_Newest_First(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewMessageRepository(db, testLogger(), nil)
	room := "general"
	at := time.Now().UTC().Truncate(time.Millisecond)
	diskMessages := []DiskMessage{
		{uuid.New(), room, "Alice", "first", at},
		{uuid.New(), room, "Bob", "second", at.Add(1 * time.Minute)},
		{uuid.New(), room, "Clara", "third", at.Add(2 * time.Minute)},
	}
	for _, dm := range diskMessages {
		req.NoError(repository.StoreMessage(dm))
	}

	fetched, cursor, err := repository.GetMessages(room, nil)
	req.NoError(err)
	req.NotNil(cursor)
	req.Len(fetched, len(diskMessages))

	// Newest first
	req.Equal("third", fetched[0].Content)
	req.Equal("second", fetched[1].Content)
	req.Equal("first", fetched[2].Content)
}

func Test_Record_Messages_Are_Scoped_By_Room(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewMessageRepository(db, testLogger(), nil)
	at := time.Now().UTC()
	req.NoError(repository.StoreMessage(DiskMessage{uuid.New(), "general", "Alice", "here", at}))
	req.NoError(repository.StoreMessage(DiskMessage{uuid.New(), "random", "Bob", "there", at}))

	fetched, _, err := repository.GetMessages("general", nil)
	req.NoError(err)
	req.Len(fetched, 1)
	req.Equal("here", fetched[0].Content)
}

func Test_Record_Multiple_Messages_And_Paginate(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	limit := 2
	repository := NewMessageRepository(db, testLogger(), &limit)
	room := "general"
	at := time.Now().UTC()
	contents := []string{"m0", "m1", "m2", "m3", "m4"}
	for i, content := range contents {
		req.NoError(repository.StoreMessage(DiskMessage{
			ID: uuid.New(), Room: room, Author: "Alice", Content: content,
			At: at.Add(time.Duration(i) * time.Second),
		}))
	}

	// First page, newest first
	page1, cursor, err := repository.GetMessages(room, nil)
	req.NoError(err)
	req.NotNil(cursor)
	req.Equal([]string{"m4", "m3"}, pageContents(page1))

	// Second page resumes after the cursor
	page2, cursor, err := repository.GetMessages(room, cursor)
	req.NoError(err)
	req.NotNil(cursor)
	req.Equal([]string{"m2", "m1"}, pageContents(page2))

	// Last page is short
	page3, cursor, err := repository.GetMessages(room, cursor)
	req.NoError(err)
	req.NotNil(cursor)
	req.Equal([]string{"m0"}, pageContents(page3))

	// And the page after it is empty with no cursor
	page4, cursor, err := repository.GetMessages(room, cursor)
	req.NoError(err)
	req.Nil(cursor)
	req.Empty(page4)
}

func Test_GetMessages_Empty_Room(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)

	repository := NewMessageRepository(db, testLogger(), nil)

	fetched, cursor, err := repository.GetMessages("ghost", nil)
	req.NoError(err)
	req.Nil(cursor)
	req.Empty(fetched)
}

func pageContents(page []DiskMessage) []string {
	out := make([]string, 0, len(page))
	for _, m := range page {
		out = append(out, m.Content)
	}
	return out
}
