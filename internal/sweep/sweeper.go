package sweep

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/courtside/rallybot/internal/services/schedule"
)

// Sweeper runs the periodic schedule maintenance jobs: finishing games
// whose end time has passed and announcing games inside the
// announcement window.
type Sweeper struct {
	cron           *cron.Cron
	schedule       schedule.ControllerInterface
	announceWindow time.Duration
	logger         *slog.Logger
}

// NewSweeper creates a sweeper; jobs don't run until Start
func NewSweeper(scheduleController schedule.ControllerInterface, announceWindow time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:           cron.New(),
		schedule:       scheduleController,
		announceWindow: announceWindow,
		logger:         logger,
	}
}

// Start registers the hourly jobs and starts the scheduler
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.runSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("sweeper started", "announce_window", s.announceWindow.String())
	return nil
}

// Stop shuts the scheduler down; running jobs finish first
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("sweeper stopped")
}

// RunNow triggers the sweep outside the schedule
func (s *Sweeper) RunNow() {
	s.runSweep()
}

func (s *Sweeper) runSweep() {
	ctx := context.Background()

	finished, err := s.schedule.FinishElapsed(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "finishing elapsed games failed", "error", err)
	} else if len(finished) > 0 {
		s.logger.InfoContext(ctx, "elapsed games swept", "count", len(finished))
	}

	announced, err := s.schedule.AnnounceDue(ctx, s.announceWindow)
	if err != nil {
		s.logger.ErrorContext(ctx, "announcing due games failed", "error", err)
	} else if len(announced) > 0 {
		s.logger.InfoContext(ctx, "due games announced", "count", len(announced))
	}
}
