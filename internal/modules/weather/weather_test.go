package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const romeJSON = `{"location":{"name":"Rome","country":"Italy"},"current":{"temp_c":24.0,"feelslike_c":25.1,"condition":{"text":"Sunny"}}}`

func newProvider(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/current.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetch(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantFail bool
	}{
		{"success", http.StatusOK, romeJSON, false},
		{"bad request", http.StatusBadRequest, `{"error":{"code":1006,"message":"No matching location found."}}`, true},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":2006}}`, true},
		{"server error", http.StatusInternalServerError, `oops`, true},
		{"undecodable body", http.StatusOK, `not json`, true},
		{"null body", http.StatusOK, `null`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newProvider(t, tt.status, tt.body)
			c := NewClient("test-key", srv.URL, nil)

			res := c.Fetch(context.Background(), "Rome")
			assert.Equal(t, tt.wantFail, res.Failed)
			if !tt.wantFail {
				assert.Equal(t, "Rome", res.Data["location"].(map[string]any)["name"])
			}
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	res := NewClient("test-key", srv.URL, nil).Fetch(context.Background(), "Rome")
	assert.Equal(t, Failure, res)
}

func TestFetchEscapesCity(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(romeJSON))
	}))
	defer srv.Close()

	NewClient("k", srv.URL+"/", nil).Fetch(context.Background(), "São Paulo & more")
	assert.Equal(t, "São Paulo & more", got)
}

func TestResultJSON(t *testing.T) {
	b, err := json.Marshal(Failure)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Failed to fetch weather data"}`, string(b))

	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(romeJSON), &data))
	b, err = json.Marshal(Result{Data: data})
	require.NoError(t, err)
	assert.JSONEq(t, romeJSON, string(b))
}

func TestSummary(t *testing.T) {
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(romeJSON), &data))

	assert.Equal(t, "Rome: Sunny, 24.0°C (feels like 25.1°C)", Result{Data: data}.Summary())
	assert.Equal(t, "", Failure.Summary())
	assert.Equal(t, "", Result{Data: map[string]any{"location": map[string]any{"name": "Rome"}}}.Summary())
	assert.Equal(t, "12.5°C", Result{Data: map[string]any{"current": map[string]any{"temp_c": 12.5}}}.Summary())
}

func TestFetchUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv, calls := newProvider(t, http.StatusOK, romeJSON)
	c := NewClient("test-key", srv.URL, NewRedisCache(rdb, time.Minute))
	ctx := context.Background()

	first := c.Fetch(ctx, "Rome")
	second := c.Fetch(ctx, "  ROME ")
	require.False(t, first.Failed)
	assert.Equal(t, first.Data, second.Data)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
	assert.True(t, mr.Exists("weather:rome"))

	mr.FastForward(2 * time.Minute)
	c.Fetch(ctx, "Rome")
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
}

func TestFetchDoesNotCacheFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	srv, calls := newProvider(t, http.StatusBadGateway, "")
	c := NewClient("test-key", srv.URL, NewRedisCache(rdb, time.Minute))

	assert.True(t, c.Fetch(context.Background(), "Rome").Failed)
	assert.True(t, c.Fetch(context.Background(), "Rome").Failed)
	assert.EqualValues(t, 2, atomic.LoadInt32(calls))
	assert.False(t, mr.Exists("weather:rome"))
}

func TestFetchUsesLocalCache(t *testing.T) {
	srv, calls := newProvider(t, http.StatusOK, romeJSON)
	c := NewClient("test-key", srv.URL, NewLocalCache(time.Minute))
	ctx := context.Background()

	first := c.Fetch(ctx, "Rome")
	second := c.Fetch(ctx, "rome")
	require.False(t, first.Failed)
	assert.Equal(t, first.Data, second.Data)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}
