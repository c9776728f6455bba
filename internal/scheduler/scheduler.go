package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"ChartArcade/internal/pipeline"
)

// Scheduler runs the fetch pipeline on a cron schedule instead of once.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Ctx      context.Context
	Log      *logrus.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Ctx:      ctx,
		Log:      log,
	}
}

// Register adds the fetch task under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	_, err := s.Cron.AddFunc(spec, s.fetchTask)
	return err
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Info("scheduler stopped")
}

func (s *Scheduler) fetchTask() {
	s.Log.Info("running scheduled fetch")
	if err := s.Pipeline.Run(s.Ctx); err != nil {
		s.Log.Errorf("scheduled fetch: %v", err)
	}
}
