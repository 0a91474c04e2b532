// File: internal/handlers/recipe_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dishcovery/go-dishcovery/internal/services/recipeapi"
)

// RecipeHandler brokers between the browser and the external generation
// backend: photo upload, sample gallery, and the recipe chat context.
type RecipeHandler struct {
	Backend        recipeapi.Service
	MaxUploadBytes int64
}

func NewRecipeHandler(backend recipeapi.Service, maxUploadBytes int64) *RecipeHandler {
	return &RecipeHandler{Backend: backend, MaxUploadBytes: maxUploadBytes}
}

// Upload forwards a food photo to the backend and returns the generated
// recipe.
func (h *RecipeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		writeError(w, "Image too large or malformed upload", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, "An image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	recipe, err := h.Backend.UploadRecipe(r.Context(), header.Filename, file)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": recipe})
}

// SampleRecipe returns the recipe for one of the bundled sample images.
func (h *RecipeHandler) SampleRecipe(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	recipe, err := h.Backend.SampleRecipe(r.Context(), name)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": recipe})
}

// Samples lists the sample gallery images.
func (h *RecipeHandler) Samples(w http.ResponseWriter, r *http.Request) {
	samples, err := h.Backend.Samples(r.Context())
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": samples})
}

// InitChat seeds the backend chat context with the active recipe.
func (h *RecipeHandler) InitChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string   `json:"title"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"recipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.Backend.InitChat(r.Context(), req.Title, req.Ingredients, req.Instructions); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Chat initialized with recipe context"})
}

// ChatMessage relays one user message and returns the assistant reply.
func (h *RecipeHandler) ChatMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeError(w, "Message is required", http.StatusBadRequest)
		return
	}

	reply, err := h.Backend.SendMessage(r.Context(), req.Message)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": reply})
}

// ClearChat drops the backend's conversation context.
func (h *RecipeHandler) ClearChat(w http.ResponseWriter, r *http.Request) {
	if err := h.Backend.ClearChat(r.Context()); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Chat history cleared"})
}
