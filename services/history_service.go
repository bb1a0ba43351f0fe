//go:generate go run go.uber.org/mock/mockgen -source=history_service.go -destination=../mocks/mock_history_service.go -package=mocks
package services

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"
)

// IHistoryService backs the REST layer: room directory, paginated history,
// and full-text search. It reads from the persistent store only; the live
// broadcast path is independent, so history and live transcripts are not
// guaranteed consistent.
type IHistoryService interface {
	ListRooms() ([]repositories.RoomRecord, error)
	CreateRoom(name string) (repositories.RoomRecord, error)
	GetMessages(room domain.RoomID, cursor *string) ([]domain.Message, *string, error)
	SearchMessages(ctx context.Context, room domain.RoomID, terms string) ([]domain.Message, error)
}

type HistoryService struct {
	roomRepository    repositories.IRoomRepository
	messageRepository repositories.IMessageRepository
	searchIndex       repositories.ISearchIndex
}

func NewHistoryService(
	roomRepository repositories.IRoomRepository,
	messageRepository repositories.IMessageRepository,
	searchIndex repositories.ISearchIndex,
) *HistoryService {
	return &HistoryService{
		roomRepository:    roomRepository,
		messageRepository: messageRepository,
		searchIndex:       searchIndex,
	}
}

func (s *HistoryService) ListRooms() ([]repositories.RoomRecord, error) {
	return s.roomRepository.ListRooms()
}

func (s *HistoryService) CreateRoom(name string) (repositories.RoomRecord, error) {
	if strings.TrimSpace(name) == "" {
		return repositories.RoomRecord{}, errors.ErrRoomNameRequired
	}
	return s.roomRepository.CreateRoom(name)
}

func (s *HistoryService) GetMessages(room domain.RoomID, cursor *string) ([]domain.Message, *string, error) {
	messages, next, err := s.messageRepository.GetMessages(string(room), cursor)
	if err != nil {
		return nil, nil, err
	}
	return fromDiskMessages(messages), next, nil
}

func (s *HistoryService) SearchMessages(ctx context.Context, room domain.RoomID, terms string) ([]domain.Message, error) {
	matches, err := s.searchIndex.Search(ctx, string(room), terms)
	if err != nil {
		return nil, err
	}
	return fromDiskMessages(matches), nil
}

func fromDiskMessages(messages []repositories.DiskMessage) []domain.Message {
	return lo.Map(messages, func(item repositories.DiskMessage, _ int) domain.Message {
		return domain.Message{
			ID:        item.ID,
			Room:      domain.RoomID(item.Room),
			Author:    item.Author,
			Content:   item.Content,
			CreatedAt: item.At,
		}
	})
}
