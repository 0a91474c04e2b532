// File: internal/repository/chat/interface.go
package chat

import (
	"context"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

// DefaultListLimit bounds ListByOwner when the caller passes limit <= 0.
const DefaultListLimit = 50

// ChatStore translates between in-memory conversations and the backing
// document store. Save performs a merge write: fields absent from the
// payload on a pre-existing record are preserved, and created_at is set
// on the first write only. Load returns (nil, nil) when no record exists
// for the id — absence is not an error. ListByOwner returns records
// sorted by updated_at descending, at most limit of them.
type ChatStore interface {
	Save(ctx context.Context, ownerID, chatID string, messages []domain.ChatMessage, recipe *domain.Recipe) error
	Load(ctx context.Context, ownerID, chatID string) (*domain.Chat, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Chat, error)
}
