//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_search_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
)

type ISearchIndex interface {
	Index(message DiskMessage) error
	Search(ctx context.Context, room, terms string) ([]DiskMessage, error)
}

// SearchIndex maintains a Bluge full-text index over persisted messages.
// Indexing happens on the permanent-sink path, outside the live fan-out, so a
// slow index never delays delivery to room members.
type SearchIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
	limit  int
}

func NewSearchIndex(writer *bluge.Writer, log *slog.Logger, limit int) *SearchIndex {
	return &SearchIndex{writer: writer, log: log, limit: limit}
}

func (s *SearchIndex) Index(message DiskMessage) error {
	doc := bluge.NewDocument(message.ID.String())
	doc.AddField(bluge.NewKeywordField("room", message.Room).StoreValue())
	doc.AddField(bluge.NewKeywordField("author", message.Author).StoreValue())
	doc.AddField(bluge.NewTextField("content", message.Content).StoreValue())
	doc.AddField(bluge.NewDateTimeField("at", message.At).StoreValue())

	return s.writer.Update(doc.ID(), doc)
}

// Search matches terms against message content within one room, returning at
// most the configured limit, best match first.
func (s *SearchIndex) Search(ctx context.Context, room, terms string) ([]DiskMessage, error) {
	reader, err := s.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			s.log.Debug("Failed to close index reader", "err", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("content")).
		AddMust(bluge.NewTermQuery(room).SetField("room"))

	request := bluge.NewTopNSearch(s.limit, query)

	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	var results []DiskMessage
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			break
		}

		var message DiskMessage
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				if id, err := uuid.Parse(string(value)); err == nil {
					message.ID = id
				}
			case "room":
				message.Room = string(value)
			case "author":
				message.Author = string(value)
			case "content":
				message.Content = string(value)
			case "at":
				if at, err := bluge.DecodeDateTime(value); err == nil {
					message.At = at
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		results = append(results, message)
	}
	return results, nil
}
