// README: Base handler utilities (planner contract, JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourplan/internal/http/middleware"
	"tourplan/internal/modules/memory"
	"tourplan/internal/modules/preference"
	"tourplan/internal/modules/weather"
	"tourplan/internal/service"
)

// Planner is the subset of service.TripPlanner the handlers depend on.
type Planner interface {
	Interact(ctx context.Context, sessionID, message string) (preference.Reply, error)
	Session(ctx context.Context, sessionID string) (*preference.Session, error)
	ResetSession(ctx context.Context, sessionID string) error
	SaveSession(ctx context.Context, userID, sessionID string) (map[string]string, error)
	Preferences(ctx context.Context, userID string) (map[string]string, error)
	UpdatePreference(ctx context.Context, userID, field, value string) error
	DeletePreference(ctx context.Context, userID, field string) error
	Weather(ctx context.Context, city string) weather.Result
	Plan(ctx context.Context, userID string, constraints map[string]any) (string, error)
}

var _ Planner = (*service.TripPlanner)(nil)

var errForbidden = errors.New("token does not match user_id")

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Detail: msg})
}

// writePlannerError maps domain sentinels to status codes; anything else is a 500 carrying err's text.
func writePlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, memory.ErrBadRequest), errors.Is(err, preference.ErrUnknownField):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, memory.ErrNotFound),
		errors.Is(err, preference.ErrSessionNotFound),
		errors.Is(err, service.ErrNoPreferences):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		writeError(c, http.StatusInternalServerError, err.Error())
	}
}

// resolveUser picks the user id for a request. A verified caller may omit it but
// cannot act on another user's preferences.
func resolveUser(c *gin.Context, requested string) (string, error) {
	caller := middleware.CallerUID(c)
	switch {
	case caller == "":
		return requested, nil
	case requested == "" || requested == caller:
		return caller, nil
	default:
		return "", errForbidden
	}
}
