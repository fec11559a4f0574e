// README: Memory service stores and retrieves whole preference sets for a user.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// StorePreferences upserts every entry of prefs for userID.
func (s *Service) StorePreferences(ctx context.Context, userID string, prefs map[string]string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrBadRequest
	}
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := s.SetPreference(ctx, userID, k, prefs[k]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) RetrievePreferences(ctx context.Context, userID string) (map[string]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrBadRequest
	}
	prefs, err := s.store.GetAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences for %s: %w", userID, err)
	}
	return prefs, nil
}

func (s *Service) SetPreference(ctx context.Context, userID, prefType, value string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(prefType) == "" {
		return ErrBadRequest
	}
	if err := s.store.Upsert(ctx, userID, prefType, value); err != nil {
		return fmt.Errorf("upsert %s for %s: %w", prefType, userID, err)
	}
	return nil
}

func (s *Service) UpdatePreference(ctx context.Context, userID, prefType, value string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(prefType) == "" {
		return ErrBadRequest
	}
	if err := s.store.Update(ctx, userID, prefType, value); err != nil {
		return fmt.Errorf("update %s for %s: %w", prefType, userID, err)
	}
	return nil
}

func (s *Service) DeletePreference(ctx context.Context, userID, prefType string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(prefType) == "" {
		return ErrBadRequest
	}
	if err := s.store.Delete(ctx, userID, prefType); err != nil {
		return fmt.Errorf("delete %s for %s: %w", prefType, userID, err)
	}
	return nil
}

func (s *Service) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}
