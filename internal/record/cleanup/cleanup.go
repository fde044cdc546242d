package cleanup

import (
	"context"

	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	"github.com/AlibekovAA/seraas-authentication/internal/observability/metrics"
)

const (
	JobName         = "record-retention"
	TriggerSchedule = "schedule"
)

type Expirer interface {
	Expire(ctx context.Context, trigger string) (int64, error)
}

// RetentionJob is the scheduled form of the flush sweep.
type RetentionJob struct {
	expirer Expirer
	log     *logger.Logger
}

func NewRetentionJob(expirer Expirer, log *logger.Logger) *RetentionJob {
	return &RetentionJob{expirer: expirer, log: log}
}

func (j *RetentionJob) Name() string {
	return JobName
}

func (j *RetentionJob) Run(ctx context.Context) error {
	removed, err := j.expirer.Expire(ctx, TriggerSchedule)
	if err != nil {
		metrics.RetentionSweepRuns.WithLabelValues("error").Inc()
		j.log.Errorf("record retention cleanup failed: %v", err)
		return err
	}

	metrics.RetentionSweepRuns.WithLabelValues("success").Inc()
	if removed > 0 {
		j.log.Infof("record retention cleanup: deleted %d expired records", removed)
	}
	return nil
}
