package ui

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-hijri-date/internal/config"
)

// Refresher runs a single job on a cron schedule. It replaces a plain ticker
// so that updates land on minute boundaries and the label flips right after
// midnight instead of up to a minute late.
type Refresher struct {
	mu       sync.Mutex
	cron     *cron.Cron
	schedule string
	running  bool
}

// NewRefresher registers job under schedule (standard five-field syntax or a
// descriptor such as "@every 1m"). The scheduler is not started.
func NewRefresher(schedule string, job func()) (*Refresher, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, job); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrScheduleAdd, err)
	}
	return &Refresher{cron: c, schedule: schedule}, nil
}

// Start begins firing the job. Calling Start on a running Refresher is a no-op.
func (r *Refresher) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.cron.Start()
	r.running = true
	slog.Info(config.MsgRefresherStart,
		config.LogKeyComponent, config.CompRefresher,
		config.LogKeySchedule, r.schedule)
}

// Stop halts the scheduler and waits for a running job to return.
// Calling Stop on a stopped Refresher is a no-op.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	ctx := r.cron.Stop()
	r.mu.Unlock()

	<-ctx.Done()
	slog.Info(config.MsgRefresherStop, config.LogKeyComponent, config.CompRefresher)
}

// Running reports whether the scheduler is active.
func (r *Refresher) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Next returns the next activation time, or the zero time when stopped.
func (r *Refresher) Next() time.Time {
	if !r.Running() {
		return time.Time{}
	}
	entries := r.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
