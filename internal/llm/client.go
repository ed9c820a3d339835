package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cognicore/recetario/pkg/recetario"
)

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const refineSystem = "You are a recipe extraction assistant. Given raw recipe text, " +
	"respond with ONLY a JSON object with the fields nombre (string), url_origen (string), " +
	"porciones (integer), calorias_totales (integer), ingredientes (list of objects with " +
	"nombre, cantidad, unidad) and preparacion (list of strings). Use \"Desconocido\" for " +
	"unknown strings and 0 for unknown numbers. No prose, no code fences."

// Refine asks the model to extract a structured recipe from raw text.
// It is an optional alternative to the heuristic normalizer; the
// decoded record uses the same shape and sentinels.
func (c *Client) Refine(ctx context.Context, rawText string) (recetario.Recipe, error) {
	reply, err := c.Chat(ctx, refineSystem, rawText)
	if err != nil {
		return recetario.Recipe{}, err
	}

	var rec recetario.Recipe
	if err := json.Unmarshal([]byte(stripFences(reply)), &rec); err != nil {
		return recetario.Recipe{}, fmt.Errorf("llm: malformed recipe JSON: %w", err)
	}
	if rec.Name == "" {
		rec.Name = recetario.Unknown
	}
	if rec.SourceURL == "" {
		rec.SourceURL = recetario.Unknown
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []recetario.Ingredient{}
	}
	if rec.Steps == nil {
		rec.Steps = []string{}
	}
	return rec, nil
}

func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}
	messages := []chatMessage{{Role: "system", Content: system}, {Role: "user", Content: user}}
	payload, err := c.send(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) send(ctx context.Context, messages []chatMessage) (*chatResponse, error) {
	reqBody, err := json.Marshal(chatRequest{Model: c.Model, Messages: messages})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("llm error: %s", payload.Error.Message)
	}
	return &payload, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// stripFences removes a Markdown code fence if the model wrapped its
// JSON in one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
