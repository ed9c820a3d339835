// Package notion is a minimal client for syncing normalized recipes
// into a Notion database. It covers only the operations the sync CLI
// needs: find a page by source URL and create or update recipe pages.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cognicore/recetario/pkg/recetario"
	"github.com/cognicore/recetario/pkg/recetario/render"
	"github.com/cognicore/recetario/pkg/recetario/units"
)

const apiVersion = "2022-06-28"

// Client calls the Notion REST API.
type Client struct {
	BaseURL string // default https://api.notion.com
	Token   string
	Units   *units.Table // for ingredient display; nil uses defaults

	HTTPClient *http.Client
}

type queryRequest struct {
	Filter      map[string]interface{} `json:"filter,omitempty"`
	StartCursor string                 `json:"start_cursor,omitempty"`
	PageSize    int                    `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results []struct {
		ID string `json:"id"`
	} `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FindPageByURL queries a database for the page whose URL property
// equals the given source URL, following pagination. ok is false when
// no page matches.
func (c *Client) FindPageByURL(ctx context.Context, databaseID, url string) (pageID string, ok bool, err error) {
	cursor := ""
	for {
		req := queryRequest{
			Filter: map[string]interface{}{
				"property": "URL",
				"url":      map[string]interface{}{"equals": url},
			},
			StartCursor: cursor,
			PageSize:    50,
		}

		var resp queryResponse
		if err := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", req, &resp); err != nil {
			return "", false, err
		}
		if len(resp.Results) > 0 {
			return resp.Results[0].ID, true, nil
		}
		if !resp.HasMore || resp.NextCursor == "" {
			return "", false, nil
		}
		cursor = resp.NextCursor
	}
}

// CreatePage creates a recipe page in the given database and returns
// the new page ID.
func (c *Client) CreatePage(ctx context.Context, databaseID string, rec recetario.Recipe) (string, error) {
	payload := map[string]interface{}{
		"parent":     map[string]interface{}{"database_id": databaseID},
		"properties": c.pageProperties(rec),
		"children":   c.pageBlocks(rec),
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/pages", payload, &resp); err != nil {
		return "", fmt.Errorf("notion: create page: %w", err)
	}
	return resp.ID, nil
}

// UpdatePage rewrites the scalar properties of an existing recipe
// page. Block children are left untouched.
func (c *Client) UpdatePage(ctx context.Context, pageID string, rec recetario.Recipe) error {
	payload := map[string]interface{}{
		"properties": c.pageProperties(rec),
	}
	if err := c.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, payload, nil); err != nil {
		return fmt.Errorf("notion: update page: %w", err)
	}
	return nil
}

func (c *Client) pageProperties(rec recetario.Recipe) map[string]interface{} {
	props := map[string]interface{}{
		"Nombre": map[string]interface{}{
			"title": []interface{}{richText(rec.Name)},
		},
		"Porciones": map[string]interface{}{"number": rec.Servings},
		"Calorías":  map[string]interface{}{"number": rec.Calories},
	}
	if rec.SourceURL != "" && rec.SourceURL != recetario.Unknown {
		props["URL"] = map[string]interface{}{"url": rec.SourceURL}
	}
	return props
}

func (c *Client) pageBlocks(rec recetario.Recipe) []interface{} {
	table := c.Units
	if table == nil {
		table = units.DefaultTable()
	}

	blocks := []interface{}{heading("Ingredientes")}
	for _, ing := range rec.Ingredients {
		blocks = append(blocks, listItem("bulleted_list_item", render.IngredientLine(ing, table)))
	}
	blocks = append(blocks, heading("Preparación"))
	for _, step := range rec.Steps {
		blocks = append(blocks, listItem("numbered_list_item", step))
	}
	return blocks
}

func richText(s string) map[string]interface{} {
	return map[string]interface{}{
		"type": "text",
		"text": map[string]interface{}{"content": s},
	}
}

func heading(s string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   "heading_2",
		"heading_2": map[string]interface{}{
			"rich_text": []interface{}{richText(s)},
		},
	}
}

func listItem(kind, s string) map[string]interface{} {
	return map[string]interface{}{
		"object": "block",
		"type":   kind,
		kind: map[string]interface{}{
			"rich_text": []interface{}{richText(s)},
		},
	}
}

// do sends one API request, retrying once after the server-indicated
// wait when rate limited.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.Token == "" {
		return fmt.Errorf("notion: token required")
	}

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		wait := retryAfter(resp)
		resp.Body.Close()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("notion: %s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("notion: unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("notion: decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://api.notion.com"
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, base+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Authorization", "Bearer "+c.Token)

	return c.httpClient().Do(req)
}

func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Second
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
