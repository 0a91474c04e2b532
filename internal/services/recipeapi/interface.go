// File: internal/services/recipeapi/interface.go
package recipeapi

import (
	"context"
	"io"

	"github.com/dishcovery/go-dishcovery/internal/domain"
)

// SampleImage is one entry of the backend's sample gallery.
type SampleImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TokenSource yields a bearer credential for the backend, or "" when the
// caller has none. Requests proceed unauthenticated in that case.
type TokenSource func(ctx context.Context) (string, error)

// Service is the client contract for the external recipe/chat generation
// backend. Every call maps to one JSON request/response pair.
type Service interface {
	UploadRecipe(ctx context.Context, filename string, image io.Reader) (*domain.Recipe, error)
	SampleRecipe(ctx context.Context, name string) (*domain.Recipe, error)
	CurrentRecipe(ctx context.Context) (*domain.Recipe, error)
	ClearRecipe(ctx context.Context) error
	Samples(ctx context.Context) ([]SampleImage, error)
	InitChat(ctx context.Context, title string, ingredients, instructions []string) error
	SendMessage(ctx context.Context, message string) (string, error)
	Suggestions(ctx context.Context) ([]string, error)
	ClearChat(ctx context.Context) error
}
