// README: API gateway; holds handler dependencies and builds the gin engine.
package http

import (
	"net/http"
	"time"

	"tourplan/internal/http/handlers"
	"tourplan/internal/infra"
)

type ServerDeps struct {
	Planner        handlers.Planner
	Verifier       infra.TokenVerifier // nil disables auth on the preference and optimize routes
	RequestTimeout time.Duration
}

type Server struct {
	planner  handlers.Planner
	verifier infra.TokenVerifier
	timeout  time.Duration
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		planner:  deps.Planner,
		verifier: deps.Verifier,
		timeout:  deps.RequestTimeout,
	}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.planner, s.verifier, s.timeout)
}
