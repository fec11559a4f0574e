// README: Weather lookup and itinerary optimization handlers.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tourplan/internal/modules/weather"
)

// WelcomeMessage is served on GET /.
const WelcomeMessage = "Welcome to the One-Day Tour Planning Assistant!"

type TripHandler struct {
	planner Planner
}

func NewTripHandler(planner Planner) *TripHandler {
	return &TripHandler{planner: planner}
}

// Root handles GET /.
func (h *TripHandler) Root(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"message": WelcomeMessage})
}

type weatherResp struct {
	City    string         `json:"city"`
	Weather weather.Result `json:"weather"`
}

// Weather handles GET /weather/?city=. A failed lookup is still a 200 carrying the failure object.
func (h *TripHandler) Weather(c *gin.Context) {
	city := strings.TrimSpace(c.Query("city"))
	if city == "" {
		writeError(c, http.StatusBadRequest, "city is required")
		return
	}
	writeJSON(c, http.StatusOK, weatherResp{City: city, Weather: h.planner.Weather(c.Request.Context(), city)})
}

type optimizeReq struct {
	UserID                string         `json:"user_id"`
	AdditionalConstraints map[string]any `json:"additional_constraints"`
}

type optimizeResp struct {
	Message            string `json:"message"`
	OptimizedItinerary string `json:"optimized_itinerary"`
}

// Optimize handles POST /optimize/.
func (h *TripHandler) Optimize(c *gin.Context) {
	var req optimizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	userID, err := resolveUser(c, strings.TrimSpace(req.UserID))
	if errors.Is(err, errForbidden) {
		writeError(c, http.StatusForbidden, err.Error())
		return
	}
	if userID == "" {
		writeError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	plan, err := h.planner.Plan(c.Request.Context(), userID, req.AdditionalConstraints)
	if err != nil {
		writePlannerError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, optimizeResp{Message: "Itinerary optimized.", OptimizedItinerary: plan})
}
