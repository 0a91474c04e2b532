// File: internal/repository/chat/memory_store.go
package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

// MemoryChatStore is an in-memory ChatStore with the same merge and
// ordering semantics as the MongoDB implementation. It backs local
// development without a database and the test suite.
type MemoryChatStore struct {
	mu    sync.RWMutex
	chats map[string]map[string]domain.Chat // ownerID -> chatID -> chat
}

func NewMemoryChatStore() *MemoryChatStore {
	return &MemoryChatStore{chats: make(map[string]map[string]domain.Chat)}
}

func (s *MemoryChatStore) Save(ctx context.Context, ownerID, chatID string, messages []domain.ChatMessage, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.chats[ownerID]
	if !ok {
		owner = make(map[string]domain.Chat)
		s.chats[ownerID] = owner
	}

	now := time.Now()
	chat := domain.Chat{
		ID:        chatID,
		UserID:    ownerID,
		Title:     DeriveTitle(messages),
		Messages:  append([]domain.ChatMessage(nil), messages...),
		Recipe:    recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if prev, exists := owner[chatID]; exists {
		chat.CreatedAt = prev.CreatedAt
		// updated_at must strictly increase across saves of the same id.
		if !now.After(prev.UpdatedAt) {
			chat.UpdatedAt = prev.UpdatedAt.Add(time.Nanosecond)
		}
	}
	owner[chatID] = chat
	return nil
}

func (s *MemoryChatStore) Load(ctx context.Context, ownerID, chatID string) (*domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chat, ok := s.chats[ownerID][chatID]
	if !ok {
		return nil, nil
	}
	out := chat
	out.Messages = append([]domain.ChatMessage(nil), chat.Messages...)
	return &out, nil
}

func (s *MemoryChatStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Chat, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	chats := make([]domain.Chat, 0, len(s.chats[ownerID]))
	for _, chat := range s.chats[ownerID] {
		chats = append(chats, chat)
	}
	sort.Slice(chats, func(i, j int) bool {
		return chats[i].UpdatedAt.After(chats[j].UpdatedAt)
	})
	if len(chats) > limit {
		chats = chats[:limit]
	}
	return chats, nil
}
