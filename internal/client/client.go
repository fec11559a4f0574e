// README: HTTP client for the tour planning API, used by tourctl.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx response; Detail carries the server's "detail" field when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.Status, e.Detail)
}

// Client is the tour planning API client.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Request performs an HTTP request and decodes the JSON response into result when non-nil.
func (c *Client) Request(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "tourctl/1.0")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Detail != "" {
			apiErr.Detail = e.Detail
		}
		return apiErr
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) Interact(ctx context.Context, sessionID, message string) (*InteractResponse, error) {
	var out InteractResponse
	err := c.Request(ctx, http.MethodPost, "/interact/", map[string]string{
		"message":    message,
		"session_id": sessionID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Session(ctx context.Context, sessionID string) (*SessionResponse, error) {
	var out SessionResponse
	if err := c.Request(ctx, http.MethodGet, "/sessions/"+url.PathEscape(sessionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetSession(ctx context.Context, sessionID string) error {
	return c.Request(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(sessionID), nil, nil)
}

func (c *Client) Weather(ctx context.Context, city string) (*WeatherResponse, error) {
	var out WeatherResponse
	if err := c.Request(ctx, http.MethodGet, "/weather/?city="+url.QueryEscape(city), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Optimize(ctx context.Context, userID string, constraints map[string]any) (*OptimizeResponse, error) {
	var out OptimizeResponse
	err := c.Request(ctx, http.MethodPost, "/optimize/", map[string]any{
		"user_id":                userID,
		"additional_constraints": constraints,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SavePreferences(ctx context.Context, userID, sessionID string) (*PreferencesResponse, error) {
	var out PreferencesResponse
	err := c.Request(ctx, http.MethodPost, "/preferences/", map[string]string{
		"user_id":    userID,
		"session_id": sessionID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Preferences(ctx context.Context, userID string) (*PreferencesResponse, error) {
	var out PreferencesResponse
	if err := c.Request(ctx, http.MethodGet, "/preferences/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SetPreference(ctx context.Context, userID, field, value string) error {
	path := "/preferences/" + url.PathEscape(userID) + "/" + url.PathEscape(field)
	return c.Request(ctx, http.MethodPut, path, map[string]string{"value": value}, nil)
}

func (c *Client) DeletePreference(ctx context.Context, userID, field string) error {
	path := "/preferences/" + url.PathEscape(userID) + "/" + url.PathEscape(field)
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}
