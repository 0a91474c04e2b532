// File: internal/services/history/session.go
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/repository/chat"
	"github.com/dishcovery/go-dishcovery/internal/services"
)

// Session owns one signed-in user's view of their conversation history:
// the chat list (most recently updated first) and the active chat id.
// It sequences store calls so callers never observe a stale list after a
// save. All methods are safe for concurrent use; interleaved completions
// resolve last-write-wins, so a slow SelectChat finishing after a newer
// one can still overwrite the active id. Known gap, kept from the
// original behavior.
type Session struct {
	ownerID string
	store   chat.ChatStore
	logger  services.Logger

	mu            sync.Mutex
	chats         []domain.Chat
	currentChatID string
	loading       bool
}

func NewSession(ownerID string, store chat.ChatStore, logger services.Logger) *Session {
	return &Session{ownerID: ownerID, store: store, logger: logger}
}

func (s *Session) OwnerID() string { return s.ownerID }

// Chats returns a copy of the current chat list.
func (s *Session) Chats() []domain.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Chat(nil), s.chats...)
}

func (s *Session) CurrentChatID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentChatID
}

// Loading reports whether a list fetch is outstanding.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CreateNewChat synthesizes a fresh chat id and makes it current. Nothing
// is written remotely; the record appears on the first SaveChatHistory.
func (s *Session) CreateNewChat() string {
	id := newChatID(time.Now())
	s.mu.Lock()
	s.currentChatID = id
	s.mu.Unlock()
	return id
}

// SelectChat makes chatID current and loads its record. A missing record
// yields (nil, nil), mirroring the store.
func (s *Session) SelectChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	s.mu.Lock()
	s.currentChatID = chatID
	s.mu.Unlock()
	return s.store.Load(ctx, s.ownerID, chatID)
}

// SaveChatHistory persists the transcript under the current chat id, then
// refreshes the list so its ordering reflects the new updated_at. Without
// a current chat there is nothing to attach the save to, so it is a no-op.
// Failures are logged, not propagated; history is best-effort.
func (s *Session) SaveChatHistory(ctx context.Context, messages []domain.ChatMessage, recipe *domain.Recipe) {
	s.mu.Lock()
	chatID := s.currentChatID
	s.mu.Unlock()
	if chatID == "" {
		return
	}

	if err := s.store.Save(ctx, s.ownerID, chatID, messages, recipe); err != nil {
		s.logger.Error("failed to save chat", "owner_id", s.ownerID, "chat_id", chatID, "error", err)
		return
	}
	s.RefreshChats(ctx)
}

// RefreshChats re-fetches the owner's chat list. On failure the previous
// list is kept so the UI stays usable while history is unavailable.
func (s *Session) RefreshChats(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	chats, err := s.store.ListByOwner(ctx, s.ownerID, chat.DefaultListLimit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Error("failed to load chats", "owner_id", s.ownerID, "error", err)
		return
	}
	s.chats = chats
}

// newChatID builds a coarse time-based id. Collision-tolerant only under
// the single-tab, single-owner usage this is scoped to.
func newChatID(now time.Time) string {
	return fmt.Sprintf("chat_%d", now.UnixMilli())
}
