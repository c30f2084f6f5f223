package ordersync

import (
	"context"
	"time"
)

// JobName identifies the periodic sync in logs and metrics.
const JobName = "order-sync"

// Job runs a rolling-window sync on every scheduler tick.
type Job struct {
	syncer *Syncer
	span   time.Duration
	loc    *time.Location
}

// NewJob builds a Job syncing the span ending now, with day boundaries in loc.
func NewJob(syncer *Syncer, span time.Duration, loc *time.Location) *Job {
	if loc == nil {
		loc = time.UTC
	}
	return &Job{syncer: syncer, span: span, loc: loc}
}

func (j *Job) Name() string { return JobName }

func (j *Job) Run(ctx context.Context) error {
	_, err := j.syncer.Sync(ctx, DefaultWindow(timeNowUTC().In(j.loc), j.span))
	return err
}
