// File: internal/services/history/manager.go
package history

import (
	"context"
	"sync"

	"github.com/dishcovery/go-dishcovery/internal/repository/chat"
	"github.com/dishcovery/go-dishcovery/internal/services"
)

// Manager hands out owner-scoped Sessions. A session is created and its
// chat list fetched once per owner identity, not on every request; Drop
// discards it on sign-out so no state survives across users.
type Manager struct {
	store  chat.ChatStore
	logger services.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(store chat.ChatStore, logger services.Logger) *Manager {
	return &Manager{
		store:    store,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Session returns the owner's session, initializing it on first use.
func (m *Manager) Session(ctx context.Context, ownerID string) *Session {
	m.mu.Lock()
	session, ok := m.sessions[ownerID]
	if !ok {
		session = NewSession(ownerID, m.store, m.logger)
		m.sessions[ownerID] = session
	}
	m.mu.Unlock()

	if !ok {
		session.RefreshChats(ctx)
	}
	return session
}

// Drop discards the owner's session and its chat list.
func (m *Manager) Drop(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, ownerID)
}
