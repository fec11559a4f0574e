// README: Cron-driven eviction of idle sessions.
package preference

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Sweeper struct {
	cron     *cron.Cron
	sessions *Sessions
}

// NewSweeper registers a Sweep job on schedule (standard cron or "@every 5m").
func NewSweeper(sessions *Sessions, schedule string) (*Sweeper, error) {
	s := &Sweeper{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		sessions: sessions,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := s.sessions.Sweep(ctx)
	if err != nil {
		slog.Error("session sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("evicted idle sessions", "count", n)
	}
}

func (s *Sweeper) Start() { s.cron.Start() }

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
