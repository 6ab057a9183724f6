package jobs

import (
	"context"
	"sync"
	"time"

	"fueltrack-api/logger"
)

// Reminder is the periodic work the job drives.
type Reminder interface {
	Run(ctx context.Context) (int, error)
}

// ServiceReminderJob periodically raises service-due reminders.
type ServiceReminderJob struct {
	reminders Reminder
	interval  time.Duration
	log       logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewServiceReminderJob(reminders Reminder, interval time.Duration) *ServiceReminderJob {
	return &ServiceReminderJob{
		reminders: reminders,
		interval:  interval,
		log:       logger.New("reminder-job"),
	}
}

// Start runs one check immediately and then one per interval until Stop or
// until ctx is done.
func (j *ServiceReminderJob) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.log.Infof("service reminder job started, interval %s", j.interval)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		j.runOnce(ctx)
		for {
			select {
			case <-ticker.C:
				j.runOnce(ctx)
			case <-ctx.Done():
				j.log.Infof("service reminder job stopped")
				return
			}
		}
	}()
}

// Stop cancels the job and waits for an in-flight run to finish.
func (j *ServiceReminderJob) Stop() {
	if j.cancel != nil {
		j.cancel()
	}
	j.wg.Wait()
}

func (j *ServiceReminderJob) runOnce(ctx context.Context) {
	raised, err := j.reminders.Run(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.log.Errorf("service reminder run failed: %v", err)
		}
		return
	}
	if raised > 0 {
		j.log.Infof("raised %d service reminders", raised)
	}
}
