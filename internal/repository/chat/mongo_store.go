// File: internal/repository/chat/mongo_store.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

const chatsCollection = "chats"

type mongoChatStore struct {
	coll *mongo.Collection
}

// NewMongoChatStore returns a ChatStore backed by a MongoDB collection.
// Documents are keyed by (user_id, chat_id); EnsureIndexes must be called
// once at startup to make that pair unique.
func NewMongoChatStore(db *mongo.Database) ChatStore {
	return &mongoChatStore{coll: db.Collection(chatsCollection)}
}

// EnsureIndexes creates the compound index backing per-owner id uniqueness
// and the updated_at sort used by ListByOwner.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(chatsCollection)
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "chat_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("creating chat indexes: %w", err)
	}
	return nil
}

// Save upserts the conversation under (ownerID, chatID). Content fields
// are replaced wholesale, created_at only on first write. The underlying
// store error is propagated to the caller; there is no retry.
func (s *mongoChatStore) Save(ctx context.Context, ownerID, chatID string, messages []domain.ChatMessage, recipe *domain.Recipe) error {
	if ownerID == "" || chatID == "" {
		return errors.New("owner ID and chat ID are required")
	}

	now := bson.NewDateTimeFromTime(time.Now())
	filter := bson.M{"user_id": ownerID, "chat_id": chatID}
	update := bson.M{
		"$set": bson.M{
			"user_id":    ownerID,
			"chat_id":    chatID,
			"title":      DeriveTitle(messages),
			"messages":   encodeMessages(messages),
			"recipe":     encodeRecipe(recipe),
			"updated_at": now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}

	_, err := s.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		log.Printf("[ChatStore] Database error saving chat %s for owner %s: %v", chatID, ownerID, err)
		return fmt.Errorf("saving chat: %w", err)
	}
	return nil
}

// Load fetches one conversation. A missing record yields (nil, nil).
func (s *mongoChatStore) Load(ctx context.Context, ownerID, chatID string) (*domain.Chat, error) {
	if ownerID == "" || chatID == "" {
		return nil, errors.New("owner ID and chat ID are required")
	}

	var doc chatDocument
	err := s.coll.FindOne(ctx, bson.M{"user_id": ownerID, "chat_id": chatID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		log.Printf("[ChatStore] Database error loading chat %s for owner %s: %v", chatID, ownerID, err)
		return nil, fmt.Errorf("loading chat: %w", err)
	}

	chat := decodeChat(doc)
	return &chat, nil
}

// ListByOwner returns up to limit conversations for one owner, most
// recently updated first.
func (s *mongoChatStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Chat, error) {
	if ownerID == "" {
		return nil, errors.New("owner ID is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		log.Printf("[ChatStore] Database error listing chats for owner %s: %v", ownerID, err)
		return nil, fmt.Errorf("listing chats: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []chatDocument
	if err := cursor.All(ctx, &docs); err != nil {
		log.Printf("[ChatStore] Database error decoding chats for owner %s: %v", ownerID, err)
		return nil, fmt.Errorf("decoding chats: %w", err)
	}

	chats := make([]domain.Chat, 0, len(docs))
	for _, doc := range docs {
		chats = append(chats, decodeChat(doc))
	}
	return chats, nil
}
