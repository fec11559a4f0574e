// README: HTTP router registration.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tourplan/internal/http/handlers"
	"tourplan/internal/http/middleware"
	"tourplan/internal/infra"
)

func NewRouter(planner handlers.Planner, verifier infra.TokenVerifier, timeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.Timeout(timeout))

	tripHandler := handlers.NewTripHandler(planner)
	r.GET("/", tripHandler.Root)
	r.GET("/weather/", tripHandler.Weather)

	chatHandler := handlers.NewChatHandler(planner)
	r.POST("/interact/", chatHandler.Interact)
	r.GET("/sessions/:id", chatHandler.Get)
	r.DELETE("/sessions/:id", chatHandler.Reset)

	protected := r.Group("/")
	if verifier != nil {
		protected.Use(middleware.Auth(verifier))
	}
	protected.POST("/optimize/", tripHandler.Optimize)

	prefHandler := handlers.NewPreferenceHandler(planner)
	protected.POST("/preferences/", prefHandler.Save)
	protected.GET("/preferences/:user_id", prefHandler.Get)
	protected.PUT("/preferences/:user_id/:field", prefHandler.Update)
	protected.DELETE("/preferences/:user_id/:field", prefHandler.Delete)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
