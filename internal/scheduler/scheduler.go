package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"school-site-backend/internal/services"
)

// Scheduler runs the periodic cleanup of feedback that admins have
// already read. Entries older than the retention window are deleted.
type Scheduler struct {
	cron      *cron.Cron
	feedback  *services.FeedbackService
	retention int
	log       *zap.SugaredLogger
}

func New(feedback *services.FeedbackService, retentionMonths int, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		feedback:  feedback,
		retention: retentionMonths,
		log:       log,
	}
}

// Start registers the cleanup job and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runCleanup); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infow("feedback cleanup scheduled", "spec", spec, "retention_months", s.retention)
	return nil
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.feedback.ReclaimRead(ctx, s.retention)
	if err != nil {
		s.log.Errorw("feedback cleanup failed", "error", err)
		return
	}
	if n > 0 {
		s.log.Infow("feedback cleanup done", "deleted", n)
	}
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
