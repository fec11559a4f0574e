package client

import "encoding/json"

// CollectedData mirrors the server's per-session state; nil means not collected yet.
type CollectedData struct {
	City      *string `json:"city"`
	Budget    *string `json:"budget"`
	Interests *string `json:"interests"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type InteractResponse struct {
	Response      string        `json:"response"`
	CollectedData CollectedData `json:"collected_data"`
	SessionID     string        `json:"session_id"`
	Complete      bool          `json:"complete"`
}

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SessionResponse struct {
	SessionID     string        `json:"session_id"`
	CollectedData CollectedData `json:"collected_data"`
	Status        string        `json:"status"`
	History       []Turn        `json:"history"`
}

// WeatherResponse keeps the provider document raw; it is either conditions or {"error": ...}.
type WeatherResponse struct {
	City    string          `json:"city"`
	Weather json.RawMessage `json:"weather"`
}

type OptimizeResponse struct {
	Message            string `json:"message"`
	OptimizedItinerary string `json:"optimized_itinerary"`
}

type PreferencesResponse struct {
	UserID      string            `json:"user_id"`
	Preferences map[string]string `json:"preferences"`
}
