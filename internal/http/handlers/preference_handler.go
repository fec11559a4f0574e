// README: Stored preference handlers (save a session, read, update, delete).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type PreferenceHandler struct {
	planner Planner
}

func NewPreferenceHandler(planner Planner) *PreferenceHandler {
	return &PreferenceHandler{planner: planner}
}

// user resolves the target user and writes the error response when there is none.
func (h *PreferenceHandler) user(c *gin.Context, requested string) (string, bool) {
	userID, err := resolveUser(c, strings.TrimSpace(requested))
	if errors.Is(err, errForbidden) {
		writeError(c, http.StatusForbidden, err.Error())
		return "", false
	}
	if userID == "" {
		writeError(c, http.StatusBadRequest, "user_id is required")
		return "", false
	}
	return userID, true
}

type saveReq struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// Save handles POST /preferences/; it persists the fields collected in a chat session.
func (h *PreferenceHandler) Save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	userID, ok := h.user(c, req.UserID)
	if !ok {
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(c, http.StatusBadRequest, "session_id is required")
		return
	}

	saved, err := h.planner.SaveSession(c.Request.Context(), userID, strings.TrimSpace(req.SessionID))
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user_id": userID, "preferences": saved})
}

// Get handles GET /preferences/:user_id.
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, ok := h.user(c, c.Param("user_id"))
	if !ok {
		return
	}
	prefs, err := h.planner.Preferences(c.Request.Context(), userID)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user_id": userID, "preferences": prefs})
}

type updateReq struct {
	Value *string `json:"value"`
}

// Update handles PUT /preferences/:user_id/:field.
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID, ok := h.user(c, c.Param("user_id"))
	if !ok {
		return
	}
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Value == nil || strings.TrimSpace(*req.Value) == "" {
		writeError(c, http.StatusBadRequest, "value is required")
		return
	}

	field := c.Param("field")
	if err := h.planner.UpdatePreference(c.Request.Context(), userID, field, *req.Value); err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user_id": userID, "field": field, "value": *req.Value})
}

// Delete handles DELETE /preferences/:user_id/:field.
func (h *PreferenceHandler) Delete(c *gin.Context) {
	userID, ok := h.user(c, c.Param("user_id"))
	if !ok {
		return
	}
	if err := h.planner.DeletePreference(c.Request.Context(), userID, c.Param("field")); err != nil {
		writePlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
