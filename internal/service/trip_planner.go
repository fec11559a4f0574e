// README: TripPlanner orchestrates preference collection, persistence and itinerary generation.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tourplan/internal/maps"
	"tourplan/internal/modules/itinerary"
	"tourplan/internal/modules/memory"
	"tourplan/internal/modules/optimization"
	"tourplan/internal/modules/preference"
	"tourplan/internal/modules/weather"
)

var ErrNoPreferences = errors.New("no preferences stored for user")

type WeatherFetcher interface {
	Fetch(ctx context.Context, city string) weather.Result
}

type AttractionFinder interface {
	SearchAttractions(ctx context.Context, city, interests string) ([]maps.Place, error)
}

type ItineraryBuilder interface {
	Build(ctx context.Context, req itinerary.Request) (string, error)
}

// TripPlanner wires the chat sessions to the preference store and the planning pipeline.
type TripPlanner struct {
	sessions  *preference.Sessions
	memory    *memory.Service
	weather   WeatherFetcher
	places    AttractionFinder
	builder   ItineraryBuilder
	optimizer optimization.Optimizer
}

// NewTripPlanner creates a TripPlanner. places may be nil when no Maps key is configured.
func NewTripPlanner(
	sessions *preference.Sessions,
	mem *memory.Service,
	wx WeatherFetcher,
	places AttractionFinder,
	builder ItineraryBuilder,
	optimizer optimization.Optimizer,
) *TripPlanner {
	return &TripPlanner{
		sessions:  sessions,
		memory:    mem,
		weather:   wx,
		places:    places,
		builder:   builder,
		optimizer: optimizer,
	}
}

func (p *TripPlanner) Interact(ctx context.Context, sessionID, message string) (preference.Reply, error) {
	return p.sessions.Interact(ctx, sessionID, message)
}

func (p *TripPlanner) Session(ctx context.Context, sessionID string) (*preference.Session, error) {
	return p.sessions.Get(ctx, sessionID)
}

func (p *TripPlanner) ResetSession(ctx context.Context, sessionID string) error {
	return p.sessions.Reset(ctx, sessionID)
}

// SaveSession stores every collected field of the session under userID and returns what was saved.
func (p *TripPlanner) SaveSession(ctx context.Context, userID, sessionID string) (map[string]string, error) {
	sess, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	values := sess.State.Values()
	if err := p.memory.StorePreferences(ctx, userID, values); err != nil {
		return nil, err
	}
	return values, nil
}

func (p *TripPlanner) Preferences(ctx context.Context, userID string) (map[string]string, error) {
	return p.memory.RetrievePreferences(ctx, userID)
}

func (p *TripPlanner) UpdatePreference(ctx context.Context, userID, field, value string) error {
	f, ok := preference.ParseField(field)
	if !ok {
		return fmt.Errorf("%w: %q", preference.ErrUnknownField, field)
	}
	return p.memory.UpdatePreference(ctx, userID, string(f), value)
}

func (p *TripPlanner) DeletePreference(ctx context.Context, userID, field string) error {
	f, ok := preference.ParseField(field)
	if !ok {
		return fmt.Errorf("%w: %q", preference.ErrUnknownField, field)
	}
	return p.memory.DeletePreference(ctx, userID, string(f))
}

func (p *TripPlanner) Weather(ctx context.Context, city string) weather.Result {
	return p.weather.Fetch(ctx, city)
}

// Plan builds an itinerary from the user's stored preferences and runs it through the optimizer.
// Weather and attraction lookups are best effort.
func (p *TripPlanner) Plan(ctx context.Context, userID string, constraints map[string]any) (string, error) {
	prefs, err := p.memory.RetrievePreferences(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(prefs) == 0 {
		return "", ErrNoPreferences
	}

	req := itinerary.Request{Preferences: prefs}
	if city := prefs[string(preference.FieldCity)]; city != "" {
		if p.weather != nil {
			req.Weather = p.weather.Fetch(ctx, city).Summary()
		}
		if p.places != nil {
			places, err := p.places.SearchAttractions(ctx, city, prefs[string(preference.FieldInterests)])
			if err != nil {
				slog.WarnContext(ctx, "attraction search failed", "user_id", userID, "city", city, "error", err)
			}
			req.Attractions = maps.Hints(places)
		}
	}

	plan, err := p.builder.Build(ctx, req)
	if err != nil {
		return "", err
	}
	return p.optimizer.Optimize(plan, constraintString(constraints, "budget"), constraintString(constraints, "time")), nil
}

func constraintString(constraints map[string]any, key string) string {
	switch v := constraints[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
