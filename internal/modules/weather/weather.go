// README: Current-conditions lookup against weatherapi.com with a uniform failure value.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FailureMessage is the body returned in place of provider data when a lookup fails.
const FailureMessage = "Failed to fetch weather data"

// Result is either the provider's JSON document or the failure indicator.
type Result struct {
	Data   map[string]any
	Failed bool
}

// Failure is the Result every failed lookup returns.
var Failure = Result{Failed: true}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed {
		return json.Marshal(map[string]string{"error": FailureMessage})
	}
	return json.Marshal(r.Data)
}

// Summary renders a one-line description, e.g. "Rome: Sunny, 24.0°C (feels like 25.1°C)".
// It returns "" for failures or documents without current conditions.
func (r Result) Summary() string {
	if r.Failed || r.Data == nil {
		return ""
	}
	current, ok := r.Data["current"].(map[string]any)
	if !ok {
		return ""
	}

	var b strings.Builder
	if loc, ok := r.Data["location"].(map[string]any); ok {
		if name, ok := loc["name"].(string); ok && name != "" {
			b.WriteString(name)
			b.WriteString(": ")
		}
	}
	if cond, ok := current["condition"].(map[string]any); ok {
		if text, ok := cond["text"].(string); ok && text != "" {
			b.WriteString(text)
		}
	}
	if temp, ok := current["temp_c"].(float64); ok {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), ": ") {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.1f°C", temp)
		if feels, ok := current["feelslike_c"].(float64); ok {
			fmt.Fprintf(&b, " (feels like %.1f°C)", feels)
		}
	}
	return strings.TrimSuffix(b.String(), ": ")
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   Cache
}

// NewClient returns a weather client. cache may be nil.
func NewClient(apiKey, baseURL string, cache Cache) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
	}
}

// Fetch returns the current conditions for city. Transport errors, non-2xx statuses
// and undecodable bodies all yield Failure; there is no retry.
func (c *Client) Fetch(ctx context.Context, city string) Result {
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, city); ok {
			return Result{Data: data}
		}
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", city)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/current.json?"+q.Encode(), nil)
	if err != nil {
		slog.WarnContext(ctx, "weather request build failed", "city", city, "error", err)
		return Failure
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "weather request failed", "city", city, "error", err)
		return Failure
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.WarnContext(ctx, "weather provider returned non-success status", "city", city, "status", resp.StatusCode)
		return Failure
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || data == nil {
		slog.WarnContext(ctx, "weather response undecodable", "city", city, "error", err)
		return Failure
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, city, data); err != nil {
			slog.WarnContext(ctx, "weather cache write failed", "city", city, "error", err)
		}
	}
	return Result{Data: data}
}
