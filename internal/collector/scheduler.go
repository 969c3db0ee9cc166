package collector

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/mewroo/market-history-service/pkg/logger"
)

// Scheduler runs the collector on a cron spec.
type Scheduler struct {
	cron      *cron.Cron
	collector *Collector
	logger    logger.Interface
	ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, collector *Collector, logger logger.Interface) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		collector: collector,
		logger:    logger,
		ctx:       ctx,
	}
}

// Register registers the collection task on the given spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		s.collector.RunOnce(s.ctx)
	}); err != nil {
		return fmt.Errorf("register collect task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}
