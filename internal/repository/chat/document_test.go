// File: internal/repository/chat/document_test.go
package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

func TestMessageEncodingRoundTrip(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	messages := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "What can I substitute for eggs?", Timestamp: t0},
		{Role: domain.RoleAssistant, Content: "Applesauce works well here.", Timestamp: t0.Add(2 * time.Second)},
		{Role: domain.RoleUser, Content: "How much of it?", Timestamp: t0.Add(5 * time.Second)},
	}

	doc := chatDocument{
		UserID:    "u1",
		ChatID:    "chat_1",
		Title:     DeriveTitle(messages),
		Messages:  encodeMessages(messages),
		CreatedAt: bson.NewDateTimeFromTime(t0),
		UpdatedAt: bson.NewDateTimeFromTime(t0),
	}
	chat := decodeChat(doc)

	require.Len(t, chat.Messages, len(messages))
	for i, m := range messages {
		assert.Equal(t, m.Role, chat.Messages[i].Role)
		assert.Equal(t, m.Content, chat.Messages[i].Content)
		// The store encoding keeps millisecond precision.
		assert.WithinDuration(t, m.Timestamp, chat.Messages[i].Timestamp, time.Millisecond)
	}
	assert.Equal(t, "chat_1", chat.ID)
	assert.Equal(t, "u1", chat.UserID)
	assert.Equal(t, "What can I substitute for eggs?", chat.Title)
}

func TestDecodeChatDefaultsMissingTimestamps(t *testing.T) {
	doc := chatDocument{
		UserID: "u1",
		ChatID: "chat_2",
		Messages: []messageDocument{
			{Role: domain.RoleUser, Content: "hello"}, // no timestamp stored
		},
	}

	before := time.Now()
	chat := decodeChat(doc)
	after := time.Now()

	require.Len(t, chat.Messages, 1)
	assert.False(t, chat.Messages[0].Timestamp.Before(before))
	assert.False(t, chat.Messages[0].Timestamp.After(after))
	assert.False(t, chat.CreatedAt.Before(before))
	assert.False(t, chat.UpdatedAt.Before(before))
}

func TestRecipeEncodingRoundTrip(t *testing.T) {
	recipe := &domain.Recipe{
		Title:        "Roast Chicken",
		ImageURL:     "https://example.com/chicken.jpg",
		Ingredients:  []string{"1 whole chicken", "2 tbsp olive oil", "salt"},
		Instructions: []string{"Preheat oven to 400F.", "Roast 45 minutes.", "Rest before carving."},
	}

	doc := chatDocument{ChatID: "chat_3", UserID: "u1", Recipe: encodeRecipe(recipe)}
	chat := decodeChat(doc)

	require.NotNil(t, chat.Recipe)
	assert.Equal(t, recipe.Title, chat.Recipe.Title)
	assert.Equal(t, recipe.ImageURL, chat.Recipe.ImageURL)
	assert.Equal(t, recipe.Ingredients, chat.Recipe.Ingredients)
	assert.Equal(t, recipe.Instructions, chat.Recipe.Instructions)

	assert.Nil(t, encodeRecipe(nil))
	assert.Nil(t, decodeChat(chatDocument{ChatID: "c", UserID: "u"}).Recipe)
}
