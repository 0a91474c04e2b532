// File: internal/services/recipeapi/client.go
package recipeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dishcovery/go-dishcovery/internal/domain"
	"github.com/dishcovery/go-dishcovery/internal/services"
)

const statusSuccess = "success"

// envelope is the backend's uniform response shape. The chat endpoints
// reuse Message for the assistant reply, the suggestion endpoint has its
// own field, everything else carries a typed payload in Data.
type envelope struct {
	Status      string          `json:"status"`
	Data        json.RawMessage `json:"data"`
	Message     string          `json:"message"`
	Suggestions []string        `json:"suggestions"`
}

type Client struct {
	config     *Config
	httpClient *http.Client
	tokens     TokenSource
	logger     services.Logger
}

// NewClient builds the backend client. tokens may be nil when no identity
// provider is wired in; requests then go out unauthenticated.
func NewClient(config *Config, tokens TokenSource, logger services.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// UploadRecipe sends the food photo as a multipart form and returns the
// generated recipe.
func (c *Client) UploadRecipe(ctx context.Context, filename string, image io.Reader) (*domain.Recipe, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Operation: "upload_recipe", Message: "invalid upload", Cause: err}
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Operation: "upload_recipe", Message: "could not read image", Cause: err}
	}
	if err := form.Close(); err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Operation: "upload_recipe", Message: "could not finish upload", Cause: err}
	}

	env, err := c.do(ctx, "upload_recipe", http.MethodPost, "/api/recipe/upload", form.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	return decodeRecipe("upload_recipe", env)
}

// SampleRecipe fetches the pre-generated recipe for one sample image.
func (c *Client) SampleRecipe(ctx context.Context, name string) (*domain.Recipe, error) {
	path := "/api/recipe/sample/" + url.PathEscape(name)
	env, err := c.do(ctx, "sample_recipe", http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	return decodeRecipe("sample_recipe", env)
}

// CurrentRecipe returns the recipe held in the backend session, if any.
func (c *Client) CurrentRecipe(ctx context.Context) (*domain.Recipe, error) {
	env, err := c.do(ctx, "current_recipe", http.MethodGet, "/api/recipe/current", "", nil)
	if err != nil {
		return nil, err
	}
	return decodeRecipe("current_recipe", env)
}

func (c *Client) ClearRecipe(ctx context.Context) error {
	_, err := c.do(ctx, "clear_recipe", http.MethodDelete, "/api/recipe/clear", "", nil)
	return err
}

// Samples lists the backend's sample gallery images.
func (c *Client) Samples(ctx context.Context) ([]SampleImage, error) {
	env, err := c.do(ctx, "samples", http.MethodGet, "/api/samples", "", nil)
	if err != nil {
		return nil, err
	}
	var samples []SampleImage
	if err := json.Unmarshal(env.Data, &samples); err != nil {
		return nil, &APIError{Type: ErrTypeBackend, Operation: "samples", Message: "malformed backend response", Cause: err}
	}
	return samples, nil
}

// InitChat seeds the backend's chat context with the active recipe. The
// field named "recipe" carries the instruction steps; that is the wire
// contract, not a typo.
func (c *Client) InitChat(ctx context.Context, title string, ingredients, instructions []string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"title":       title,
		"ingredients": ingredients,
		"recipe":      instructions,
	})
	if err != nil {
		return &APIError{Type: ErrTypeValidation, Operation: "init_chat", Message: "invalid payload", Cause: err}
	}
	_, err = c.do(ctx, "init_chat", http.MethodPost, "/api/chat/init", "application/json", bytes.NewReader(payload))
	return err
}

// SendMessage sends one user message and returns the assistant reply.
func (c *Client) SendMessage(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &APIError{Type: ErrTypeValidation, Operation: "send_message", Message: "Message is required"}
	}
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", &APIError{Type: ErrTypeValidation, Operation: "send_message", Message: "invalid payload", Cause: err}
	}
	env, err := c.do(ctx, "send_message", http.MethodPost, "/api/chat/message", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Suggestions fetches conversation starters for the active recipe.
func (c *Client) Suggestions(ctx context.Context) ([]string, error) {
	env, err := c.do(ctx, "suggestions", http.MethodGet, "/api/chat/suggestions", "", nil)
	if err != nil {
		return nil, err
	}
	return env.Suggestions, nil
}

func (c *Client) ClearChat(ctx context.Context) error {
	_, err := c.do(ctx, "clear_chat", http.MethodPost, "/api/chat/clear", "", nil)
	return err
}

// do runs one request/response pair against the backend. Transport
// failures come back as a NETWORK APIError with MsgConnectFailed; a
// non-success envelope becomes a BACKEND APIError carrying the server's
// message.
func (c *Client) do(ctx context.Context, operation, method, path, contentType string, body io.Reader) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, &APIError{Type: ErrTypeValidation, Operation: operation, Message: "failed to create request", Cause: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.attachToken(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(operation, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{
			Type:       ErrTypeBackend,
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    "malformed backend response",
			Cause:      err,
		}
	}
	if env.Status != statusSuccess {
		return nil, newBackendError(operation, resp.StatusCode, env.Message)
	}
	return &env, nil
}

// attachToken adds the bearer credential when one is available. A missing
// or failing token source is tolerated; the request goes out without it.
func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens(ctx)
	if err != nil {
		c.logger.Warn("could not obtain backend token", "error", err)
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func decodeRecipe(operation string, env *envelope) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := json.Unmarshal(env.Data, &recipe); err != nil {
		return nil, &APIError{Type: ErrTypeBackend, Operation: operation, Message: "malformed backend response", Cause: err}
	}
	if recipe.Title == "" && len(recipe.Ingredients) == 0 {
		return nil, newBackendError(operation, 0, fmt.Sprintf("no recipe in %s response", operation))
	}
	return &recipe, nil
}
