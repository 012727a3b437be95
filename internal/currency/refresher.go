package currency

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher keeps the HTTP converter's cached rates warm on a fixed
// interval.
type Refresher struct {
	cron  *cron.Cron
	conv  *HTTP
	pairs []string
	log   *slog.Logger
}

// NewRefresher creates a Refresher that re-fetches the given pairs
// every interval.
func NewRefresher(
	conv *HTTP,
	pairs []string,
	interval time.Duration,
	log *slog.Logger,
) (*Refresher, error) {
	c := cron.New()

	r := &Refresher{
		cron:  c,
		conv:  conv,
		pairs: pairs,
		log:   log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), r.run); err != nil {
		return nil, err
	}

	return r, nil
}

// Start begins the refresh schedule.
func (r *Refresher) Start() {
	r.log.Info("currency rate refresher started", "pairs", r.pairs)
	r.cron.Start()
}

// Stop gracefully stops the schedule, waiting for a running refresh to
// finish.
func (r *Refresher) Stop() context.Context {
	r.log.Info("currency rate refresher stopping")
	return r.cron.Stop()
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.conv.Refresh(ctx, r.pairs); err != nil {
		r.log.Error("currency rate refresh failed", "error", err)
	}
}
