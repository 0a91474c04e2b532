// File: internal/repository/chat/document.go
package chat

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

// chatDocument is the stored shape of a conversation. Timestamps use the
// store's native datetime encoding.
type chatDocument struct {
	UserID    string            `bson:"user_id"`
	ChatID    string            `bson:"chat_id"`
	Title     string            `bson:"title"`
	Messages  []messageDocument `bson:"messages"`
	Recipe    *recipeDocument   `bson:"recipe"`
	CreatedAt bson.DateTime     `bson:"created_at,omitempty"`
	UpdatedAt bson.DateTime     `bson:"updated_at,omitempty"`
}

type messageDocument struct {
	Role      string        `bson:"role"`
	Content   string        `bson:"content"`
	Timestamp bson.DateTime `bson:"timestamp"`
}

type recipeDocument struct {
	Title        string   `bson:"title"`
	ImageURL     string   `bson:"image_url,omitempty"`
	Ingredients  []string `bson:"ingredients"`
	Instructions []string `bson:"instructions"`
}

func encodeMessages(messages []domain.ChatMessage) []messageDocument {
	docs := make([]messageDocument, 0, len(messages))
	for _, m := range messages {
		docs = append(docs, messageDocument{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: bson.NewDateTimeFromTime(m.Timestamp),
		})
	}
	return docs
}

func encodeRecipe(recipe *domain.Recipe) *recipeDocument {
	if recipe == nil {
		return nil
	}
	return &recipeDocument{
		Title:        recipe.Title,
		ImageURL:     recipe.ImageURL,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}
}

func decodeChat(doc chatDocument) domain.Chat {
	messages := make([]domain.ChatMessage, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		messages = append(messages, domain.ChatMessage{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: decodeTime(m.Timestamp),
		})
	}

	var recipe *domain.Recipe
	if doc.Recipe != nil {
		recipe = &domain.Recipe{
			Title:        doc.Recipe.Title,
			ImageURL:     doc.Recipe.ImageURL,
			Ingredients:  doc.Recipe.Ingredients,
			Instructions: doc.Recipe.Instructions,
		}
	}

	return domain.Chat{
		ID:        doc.ChatID,
		UserID:    doc.UserID,
		Title:     doc.Title,
		Messages:  messages,
		Recipe:    recipe,
		CreatedAt: decodeTime(doc.CreatedAt),
		UpdatedAt: decodeTime(doc.UpdatedAt),
	}
}

// decodeTime falls back to "now" for missing values so one bad timestamp
// never fails a whole load.
func decodeTime(dt bson.DateTime) time.Time {
	if dt == 0 {
		return time.Now()
	}
	return dt.Time()
}
