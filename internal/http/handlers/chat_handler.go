// README: Chat handlers; drive the per-session preference conversation.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourplan/internal/modules/preference"
)

type ChatHandler struct {
	planner Planner
}

func NewChatHandler(planner Planner) *ChatHandler {
	return &ChatHandler{planner: planner}
}

type interactReq struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type interactResp struct {
	Response      string           `json:"response"`
	CollectedData preference.State `json:"collected_data"`
	SessionID     string           `json:"session_id"`
	Complete      bool             `json:"complete"`
}

// Interact handles POST /interact/.
func (h *ChatHandler) Interact(c *gin.Context) {
	var req interactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.planner.Interact(c.Request.Context(), strings.TrimSpace(req.SessionID), req.Message)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, interactResp{
		Response:      reply.Response,
		CollectedData: reply.State,
		SessionID:     reply.SessionID,
		Complete:      reply.Complete(),
	})
}

type sessionResp struct {
	SessionID     string            `json:"session_id"`
	CollectedData preference.State  `json:"collected_data"`
	Status        preference.Status `json:"status"`
	History       []preference.Turn `json:"history"`
}

// Get handles GET /sessions/:id.
func (h *ChatHandler) Get(c *gin.Context) {
	sess, err := h.planner.Session(c.Request.Context(), c.Param("id"))
	if err != nil {
		writePlannerError(c, err)
		return
	}
	history := sess.History
	if history == nil {
		history = []preference.Turn{}
	}
	writeJSON(c, http.StatusOK, sessionResp{
		SessionID:     sess.ID,
		CollectedData: sess.State,
		Status:        sess.State.Status(),
		History:       history,
	})
}

// Reset handles DELETE /sessions/:id ("Clear Chat").
func (h *ChatHandler) Reset(c *gin.Context) {
	if err := h.planner.ResetSession(c.Request.Context(), c.Param("id")); err != nil {
		writePlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
