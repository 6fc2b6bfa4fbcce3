package competition

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/go-co-op/gocron/v2"
	"time"
)

const (
	DefaultRetention     = 5000
	DefaultPruneInterval = 10 * time.Minute
)

// Retention periodically trims the activity log to its newest entries.
type Retention struct {
	activities storage.ActivityStorage
	keep       int
	interval   time.Duration
	scheduler  gocron.Scheduler
}

func NewRetention(activities storage.ActivityStorage, keep int, interval time.Duration) (*Retention, error) {
	if keep <= 0 {
		keep = DefaultRetention
	}
	if interval <= 0 {
		interval = DefaultPruneInterval
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Retention{activities: activities, keep: keep, interval: interval, scheduler: s}, nil
}

func (r *Retention) Start() error {
	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(r.run),
		gocron.WithName("activity_retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	r.scheduler.Start()
	logging.Log.Infof("ACTIVITY: retention job keeps %d entries every %s", r.keep, r.interval)
	return nil
}

func (r *Retention) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := r.Prune(ctx); err != nil {
		logging.Log.Errorf("ACTIVITY: retention prune failed: %v", err)
	}
}

func (r *Retention) Prune(ctx context.Context) (int, error) {
	removed, err := r.activities.Prune(ctx, r.keep)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logging.Log.Infof("ACTIVITY: pruned %d entries", removed)
	}
	return removed, nil
}

func (r *Retention) Stop() error {
	return r.scheduler.Shutdown()
}
