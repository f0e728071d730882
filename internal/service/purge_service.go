package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type purger interface {
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

// PurgeService hard-deletes tasks that have stayed soft-deleted past the retention.
type PurgeService struct {
	tasks     purger
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewPurgeService(tasks purger, retention time.Duration, logger *zap.Logger) *PurgeService {
	return &PurgeService{tasks: tasks, retention: retention, logger: logger, now: time.Now}
}

func (s *PurgeService) Run(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.tasks.PurgeDeleted(ctx, cutoff)
	if err != nil {
		s.logger.Error("purge deleted tasks failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}
	if n > 0 {
		s.logger.Info("purged deleted tasks", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
