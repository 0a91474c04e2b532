// File: internal/domain/chat.go
package domain

import "time"

// Message roles. A conversation transcript only ever contains these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry in a conversation transcript. Messages are
// immutable once created; slice order is the transcript order.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Recipe is the snapshot of a generated recipe attached to a chat.
type Recipe struct {
	Title        string   `json:"title"`
	ImageURL     string   `json:"image_url,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Chat represents a single conversation thread owned by one user.
// IDs are generated client-side and are only unique per owner.
type Chat struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	Recipe    *Recipe       `json:"recipe,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
