package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourplan/internal/client"
)

// TestPlanningFlow drives a running API (TOUR_API_BASE_URL) through chat, save and optimize.
// It talks to the real model, so it only checks shapes and status codes.
func TestPlanningFlow(t *testing.T) {
	_ = godotenv.Load("../../.env")
	baseURL := strings.TrimSpace(os.Getenv("TOUR_API_BASE_URL"))
	if baseURL == "" {
		t.Skip("TOUR_API_BASE_URL not set; skipping end-to-end API test")
	}

	c := client.NewClient(baseURL, 90*time.Second)
	c.Token = os.Getenv("TOUR_API_TOKEN")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	waitForAPIReady(t, c.HTTPClient, c.BaseURL)

	userID := fmt.Sprintf("it-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()
		for _, f := range []string{"city", "budget", "interests", "start_time", "end_time"} {
			_ = c.DeletePreference(cleanupCtx, userID, f)
		}
	})

	_, err := c.Optimize(ctx, userID, nil)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr), "expected API error, got %v", err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	reply, err := c.Interact(ctx, "", "I want to visit Rome with a budget of 100 euros. "+
		"I love history and food. I'll start at 9 AM and end at 6 PM.")
	require.NoError(t, err)
	require.NotEmpty(t, reply.SessionID)
	assert.NotEmpty(t, reply.Response)
	t.Logf("[TEST LOG] assistant: %s (complete=%v)", reply.Response, reply.Complete)

	for i := 0; i < 3 && !reply.Complete; i++ {
		reply, err = c.Interact(ctx, reply.SessionID, "City Rome, budget 100 EUR, interests history, from 9 AM until 6 PM.")
		require.NoError(t, err)
	}

	saved, err := c.SavePreferences(ctx, userID, reply.SessionID)
	require.NoError(t, err)
	require.NotEmpty(t, saved.Preferences)

	plan, err := c.Optimize(ctx, userID, map[string]any{"budget": "100 EUR", "time": "9 AM - 6 PM"})
	require.NoError(t, err)
	assert.Equal(t, "Itinerary optimized.", plan.Message)
	assert.NotEmpty(t, plan.OptimizedItinerary)

	require.NoError(t, c.ResetSession(ctx, reply.SessionID))
	_, err = c.Session(ctx, reply.SessionID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func waitForAPIReady(t *testing.T, hc *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := hc.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/health did not return 200 in time", baseURL)
}
