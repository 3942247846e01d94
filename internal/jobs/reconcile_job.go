package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReconcileJobName is the name of the periodic derived-data reconcile job
const ReconcileJobName = "derived_reconcile"

// reconcileTimeout bounds one reconcile run
const reconcileTimeout = time.Minute

// Refresher rebuilds the derived collections from the quote collection.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ReconcileJob periodically forces a full recompute of the derived customer
// and project collections. The change bus and revision poll already cover
// normal operation; this is a safety net for missed notifications.
type ReconcileJob struct {
	refresher Refresher
	logger    *zap.Logger
}

func NewReconcileJob(refresher Refresher, logger *zap.Logger) *ReconcileJob {
	return &ReconcileJob{refresher: refresher, logger: logger}
}

// Run executes one reconcile. Called by the scheduler.
func (j *ReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if err := j.refresher.Refresh(ctx); err != nil {
		j.logger.Error("derived data reconcile failed", zap.Error(err))
	}
}

// RegisterReconcileJob schedules an hourly reconcile.
func RegisterReconcileJob(scheduler *Scheduler, refresher Refresher, logger *zap.Logger) error {
	job := NewReconcileJob(refresher, logger)
	return scheduler.AddJob(ReconcileJobName, "0 0 * * * *", job.Run)
}
