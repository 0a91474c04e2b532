// File: internal/repository/chat/title.go
package chat

import "github.com/dishcovery/go-dishcovery/internal/domain"

const (
	maxTitleRunes = 50
	defaultTitle  = "New Chat"
)

// DeriveTitle builds a chat title from the first user-authored message,
// truncated to 50 characters with an ellipsis marker when the source is
// longer. Transcripts with no user message get the literal "New Chat".
func DeriveTitle(messages []domain.ChatMessage) string {
	for _, m := range messages {
		if m.Role != domain.RoleUser {
			continue
		}
		if m.Content == "" {
			break
		}
		runes := []rune(m.Content)
		if len(runes) > maxTitleRunes {
			return string(runes[:maxTitleRunes]) + "..."
		}
		return m.Content
	}
	return defaultTitle
}
