//go:generate go run go.uber.org/mock/mockgen -source=room.go -destination=../mocks/mock_room_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IRoomRepository interface {
	CreateRoom(name string) (RoomRecord, error)
	ListRooms() ([]RoomRecord, error)
}

// RoomRecord is the REST-facing room directory entry. It is unrelated to the
// relay's implicit in-memory rooms: joining a socket room never consults this
// store, and creating a record here opens no worker.
type RoomRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) RoomRepository {
	return RoomRepository{db: db}
}

// CreateRoom persists a directory entry under "room:{created_padded}:{uuid}",
// so a reverse scan lists newest rooms first.
func (r RoomRepository) CreateRoom(name string) (RoomRecord, error) {
	record := RoomRecord{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	key := fmt.Sprintf("room:%019d:%s", record.CreatedAt.UnixNano(), record.ID)

	bytes, err := json.Marshal(record)
	if err != nil {
		return RoomRecord{}, err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
	if err != nil {
		return RoomRecord{}, err
	}
	return record, nil
}

// ListRooms returns every room record, newest first.
func (r RoomRepository) ListRooms() ([]RoomRecord, error) {
	var records []RoomRecord

	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("room:")

		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append([]byte{}, prefix...)
		seekKey = append(seekKey, []byte("9999999999999999999")...)

		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var record RoomRecord
				if err := json.Unmarshal(value, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
