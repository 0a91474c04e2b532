// File: internal/services/history/session_test.go
package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/repository/chat"
	"github.com/dishcovery/go-dishcovery/internal/services"
)

// flakyStore wraps a real store and fails the next calls on demand.
type flakyStore struct {
	inner    chat.ChatStore
	failSave bool
	failList bool
}

func (f *flakyStore) Save(ctx context.Context, ownerID, chatID string, messages []domain.ChatMessage, recipe *domain.Recipe) error {
	if f.failSave {
		return errors.New("store unavailable")
	}
	return f.inner.Save(ctx, ownerID, chatID, messages, recipe)
}

func (f *flakyStore) Load(ctx context.Context, ownerID, chatID string) (*domain.Chat, error) {
	return f.inner.Load(ctx, ownerID, chatID)
}

func (f *flakyStore) ListByOwner(ctx context.Context, ownerID string, limit int) ([]domain.Chat, error) {
	if f.failList {
		return nil, errors.New("store unavailable")
	}
	return f.inner.ListByOwner(ctx, ownerID, limit)
}

func testMessages(content string) []domain.ChatMessage {
	return []domain.ChatMessage{{Role: domain.RoleUser, Content: content, Timestamp: time.Now()}}
}

func TestCreateNewChatSetsCurrentWithoutWriting(t *testing.T) {
	store := chat.NewMemoryChatStore()
	session := NewSession("u1", store, &services.NoOpLogger{})

	id := session.CreateNewChat()

	assert.True(t, strings.HasPrefix(id, "chat_"))
	assert.Equal(t, id, session.CurrentChatID())

	// No record exists until the first save.
	loaded, err := store.Load(context.Background(), "u1", id)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Empty(t, session.Chats())
}

func TestSaveChatHistoryIsNoOpWithoutCurrentChat(t *testing.T) {
	store := chat.NewMemoryChatStore()
	session := NewSession("u1", store, &services.NoOpLogger{})

	session.SaveChatHistory(context.Background(), testMessages("hello"), nil)

	chats, err := store.ListByOwner(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, chats)
}

func TestSaveChatHistoryPersistsAndRefreshesList(t *testing.T) {
	store := chat.NewMemoryChatStore()
	session := NewSession("u1", store, &services.NoOpLogger{})
	ctx := context.Background()

	id := session.CreateNewChat()
	session.SaveChatHistory(ctx, testMessages("What wine pairs with this?"), nil)

	chats := session.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, id, chats[0].ID)
	assert.Equal(t, "What wine pairs with this?", chats[0].Title)
	assert.False(t, session.Loading())
}

func TestSaveChatHistoryReordersListByRecency(t *testing.T) {
	store := chat.NewMemoryChatStore()
	session := NewSession("u1", store, &services.NoOpLogger{})
	ctx := context.Background()

	first := session.CreateNewChat()
	session.SaveChatHistory(ctx, testMessages("first"), nil)

	time.Sleep(2 * time.Millisecond)
	session.mu.Lock()
	session.currentChatID = "chat_second"
	session.mu.Unlock()
	session.SaveChatHistory(ctx, testMessages("second"), nil)

	chats := session.Chats()
	require.Len(t, chats, 2)
	assert.Equal(t, "chat_second", chats[0].ID)
	assert.Equal(t, first, chats[1].ID)

	// Saving the first chat again moves it back to the front.
	time.Sleep(2 * time.Millisecond)
	_, err := session.SelectChat(ctx, first)
	require.NoError(t, err)
	session.SaveChatHistory(ctx, testMessages("first, continued"), nil)

	chats = session.Chats()
	require.Len(t, chats, 2)
	assert.Equal(t, first, chats[0].ID)
}

func TestSelectChatLoadsRecordAndSetsCurrent(t *testing.T) {
	store := chat.NewMemoryChatStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "u1", "chat_old", testMessages("old conversation"), nil))

	session := NewSession("u1", store, &services.NoOpLogger{})
	loaded, err := session.SelectChat(ctx, "chat_old")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "chat_old", loaded.ID)
	assert.Equal(t, "chat_old", session.CurrentChatID())
}

func TestSelectChatAbsentRecord(t *testing.T) {
	store := chat.NewMemoryChatStore()
	session := NewSession("u1", store, &services.NoOpLogger{})

	loaded, err := session.SelectChat(context.Background(), "chat_missing")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
	// The id still becomes current so a following save lands on it.
	assert.Equal(t, "chat_missing", session.CurrentChatID())
}

func TestSaveErrorIsSwallowedAndListUntouched(t *testing.T) {
	inner := chat.NewMemoryChatStore()
	store := &flakyStore{inner: inner}
	session := NewSession("u1", store, &services.NoOpLogger{})
	ctx := context.Background()

	session.CreateNewChat()
	session.SaveChatHistory(ctx, testMessages("kept"), nil)
	require.Len(t, session.Chats(), 1)

	store.failSave = true
	session.SaveChatHistory(ctx, testMessages("lost"), nil)

	chats := session.Chats()
	require.Len(t, chats, 1)
	assert.Equal(t, "kept", chats[0].Title)
}

func TestRefreshFailureKeepsPreviousList(t *testing.T) {
	inner := chat.NewMemoryChatStore()
	store := &flakyStore{inner: inner}
	session := NewSession("u1", store, &services.NoOpLogger{})
	ctx := context.Background()

	session.CreateNewChat()
	session.SaveChatHistory(ctx, testMessages("before outage"), nil)
	require.Len(t, session.Chats(), 1)

	store.failList = true
	session.RefreshChats(ctx)

	require.Len(t, session.Chats(), 1)
	assert.False(t, session.Loading())
}

func TestManagerInitializesSessionOncePerOwner(t *testing.T) {
	store := chat.NewMemoryChatStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "u1", "chat_1", testMessages("existing"), nil))

	manager := NewManager(store, &services.NoOpLogger{})

	session := manager.Session(ctx, "u1")
	require.Len(t, session.Chats(), 1)

	// The same session comes back, list already populated.
	again := manager.Session(ctx, "u1")
	assert.Same(t, session, again)

	// Other owners get their own state.
	other := manager.Session(ctx, "u2")
	assert.NotSame(t, session, other)
	assert.Empty(t, other.Chats())
}

func TestManagerDropDiscardsSessionState(t *testing.T) {
	store := chat.NewMemoryChatStore()
	manager := NewManager(store, &services.NoOpLogger{})
	ctx := context.Background()

	session := manager.Session(ctx, "u1")
	session.CreateNewChat()
	require.NotEmpty(t, session.CurrentChatID())

	manager.Drop("u1")

	fresh := manager.Session(ctx, "u1")
	assert.NotSame(t, session, fresh)
	assert.Empty(t, fresh.CurrentChatID())
}
