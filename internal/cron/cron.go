package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jsayram/CodeDetailsWeb-sub001/internal/service"
)

const (
	warmTagsSpec     = "@every 10m"
	purgePendingSpec = "@every 5m"
	snapshotSpec     = "5 0 * * *"

	jobTimeout = 2 * time.Minute
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	services *service.Services
	log      *zap.Logger
}

// NewScheduler runs jobs in UTC so the daily snapshot lines up with
// snapshot days.
func NewScheduler(services *service.Services, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		services: services,
		log:      log,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		fn   func(ctx context.Context)
	}{
		{warmTagsSpec, "warm tag cache", s.warmTagCache},
		{purgePendingSpec, "purge pending category changes", s.purgePendingChanges},
		{snapshotSpec, "analytics snapshot", s.takeSnapshot},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, s.wrap(job.name, job.fn)); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(jobs)))
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) wrap(name string, fn func(ctx context.Context)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		s.log.Debug("running job", zap.String("job", name))
		fn(ctx)
		s.log.Debug("job finished", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	}
}

// warmTagCache reloads the tag list before readers find it expired.
func (s *Scheduler) warmTagCache(ctx context.Context) {
	if err := s.services.Tag.WarmCache(ctx); err != nil {
		s.log.Error("failed to warm tag cache", zap.Error(err))
	}
}

// purgePendingChanges drops expired in-memory category changes. Redis
// expires its own copies.
func (s *Scheduler) purgePendingChanges(context.Context) {
	if n := s.services.Pending.Purge(); n > 0 {
		s.log.Info("purged expired category changes", zap.Int("count", n))
	}
}

func (s *Scheduler) takeSnapshot(ctx context.Context) {
	snap, err := s.services.Analytics.TakeSnapshot(ctx)
	if err != nil {
		s.log.Error("failed to take analytics snapshot", zap.Error(err))
		return
	}
	s.log.Info("analytics snapshot stored",
		zap.Time("day", snap.Day),
		zap.Int("projects", snap.TotalProjects),
		zap.String("average_completeness", snap.AverageCompleteness.String()))
}
