package worker

import (
	"context"
	"time"

	"github.com/xavierca1/financekeem/internal/log"
)

// Periodic runs a job once at start and then on every tick until ctx is done.
type Periodic struct {
	Name         string
	TickInterval time.Duration
	Job          func(ctx context.Context)
}

func NewPeriodic(name string, interval time.Duration, job func(ctx context.Context)) *Periodic {
	return &Periodic{
		Name:         name,
		TickInterval: interval,
		Job:          job,
	}
}

func (w *Periodic) Start(ctx context.Context) {
	log.Debugf("%s worker started (every %s)", w.Name, w.TickInterval)

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	w.Job(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Debugf("%s worker stopped", w.Name)
			return
		case <-ticker.C:
			w.Job(ctx)
		}
	}
}
