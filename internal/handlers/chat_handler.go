// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/middleware"
	"github.com/dishcovery/go-dishcovery/internal/services/history"
	"github.com/dishcovery/go-dishcovery/internal/services/suggestions"
)

// ChatHandler serves the per-user conversation history API.
type ChatHandler struct {
	History *history.Manager
}

func NewChatHandler(manager *history.Manager) *ChatHandler {
	return &ChatHandler{History: manager}
}

func (h *ChatHandler) session(r *http.Request) (*history.Session, bool) {
	userID, ok := middleware.UserID(r)
	if !ok {
		return nil, false
	}
	ownerID := strconv.FormatUint(uint64(userID), 10)
	return h.History.Session(r.Context(), ownerID), true
}

// GetUserChats returns the signed-in user's chat list, most recently
// updated first.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, session.Chats())
}

// CreateChat hands out a fresh chat id and makes it current. The record
// is not persisted until the first save.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"chatId": session.CreateNewChat()})
}

// GetChat selects and loads one conversation.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID := mux.Vars(r)["id"]
	chat, err := session.SelectChat(r.Context(), chatID)
	if err != nil {
		writeError(w, "Could not load chat", http.StatusInternalServerError)
		return
	}
	if chat == nil {
		writeError(w, "Chat not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, chat)
}

// SaveChat persists the transcript under the current chat id.
func (h *ChatHandler) SaveChat(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Messages []domain.ChatMessage `json:"messages"`
		Recipe   *domain.Recipe       `json:"recipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	session.SaveChatHistory(r.Context(), req.Messages, req.Recipe)
	w.WriteHeader(http.StatusNoContent)
}

// RefreshChats re-fetches the chat list and returns it.
func (h *ChatHandler) RefreshChats(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	session.RefreshChats(r.Context())
	writeJSON(w, http.StatusOK, session.Chats())
}

// GetSuggestions returns a random handful of conversation starters.
func (h *ChatHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	count := 4
	if raw := r.URL.Query().Get("count"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			count = parsed
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "success",
		"suggestions": suggestions.Random(count),
	})
}
