package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler interface {
	AddJob(job Job, spec string) error
	Start(ctx context.Context)
	Stop()
}

// CronScheduler runs jobs on standard five-field cron specs. A job whose
// previous run is still going skips the tick.
type CronScheduler struct {
	cron    *cron.Cron
	entries map[string]cron.EntryID
	log     *logger.Logger
	ctx     context.Context
}

func NewCronScheduler(log *logger.Logger) *CronScheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &CronScheduler{
		cron:    cron.New(cron.WithParser(parser)),
		entries: make(map[string]cron.EntryID),
		log:     log,
		ctx:     context.Background(),
	}
}

func (c *CronScheduler) AddJob(job Job, spec string) error {
	name := job.Name()
	fields := logger.Fields{"job": name, "spec": spec}

	entryID, err := c.cron.AddFunc(spec, c.wrap(job, spec))
	if err != nil {
		c.log.WithFields(context.Background(), fields).Errorf("schedule job failed: %v", err)
		return err
	}
	c.entries[name] = entryID
	c.log.WithFields(context.Background(), fields).Info("job scheduled")
	return nil
}

func (c *CronScheduler) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.cron.Start()
}

// Stop waits for running jobs to finish.
func (c *CronScheduler) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

func (c *CronScheduler) wrap(job Job, spec string) func() {
	var running atomic.Bool
	return func() {
		runJob(c.ctx, c.log, job, spec, &running)
	}
}

func runJob(ctx context.Context, log *logger.Logger, job Job, spec string, running *atomic.Bool) {
	fields := logger.Fields{"job": job.Name(), "spec": spec}
	if !running.CompareAndSwap(false, true) {
		log.WithFields(ctx, fields).Info("job skipped: still running")
		return
	}
	defer running.Store(false)

	start := time.Now()
	log.WithFields(ctx, fields).Debug("job started")
	err := job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		log.WithFields(ctx, fields).Errorf("job failed after %s: %v", elapsed, err)
		return
	}
	log.WithFields(ctx, fields).Infof("job finished in %s", elapsed)
}
