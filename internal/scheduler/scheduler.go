package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/config"
	"github.com/mamadbah2/labshare/internal/domain/models"
)

// Publisher publishes an inventory snapshot.
type Publisher interface {
	Publish(ctx context.Context, now time.Time) (models.InventorySnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron      *cron.Cron
	publisher Publisher
	schedule  string
	location  *time.Location
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, publisher Publisher, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		publisher: publisher,
		schedule:  cfg.CronSchedule,
		location:  loc,
		logger:    logger,
	}, nil
}

// Start registers the inventory snapshot job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.publishSnapshot); err != nil {
		return fmt.Errorf("schedule inventory snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) publishSnapshot() {
	s.logger.Info("publishing inventory snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := s.publisher.Publish(ctx, time.Now().In(s.location)); err != nil {
		s.logger.Error("failed to publish inventory snapshot", zap.Error(err))
		return
	}
	s.logger.Info("inventory snapshot published")
}
