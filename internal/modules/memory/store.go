// README: Preference store contract; one value per (user, preference type).
package memory

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("preference not found")
	ErrBadRequest = errors.New("user id and preference type are required")
)

// Store persists user preferences. Implementations must keep at most one value per
// (userID, prefType): Upsert replaces, never duplicates.
type Store interface {
	Upsert(ctx context.Context, userID, prefType, value string) error
	GetAll(ctx context.Context, userID string) (map[string]string, error)
	// Update changes an existing preference and returns ErrNotFound when the user has none of prefType.
	Update(ctx context.Context, userID, prefType, value string) error
	// Delete removes the preference; deleting a missing one is not an error.
	Delete(ctx context.Context, userID, prefType string) error
	Close(ctx context.Context) error
}
