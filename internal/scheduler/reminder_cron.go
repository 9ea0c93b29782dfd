package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// Runner is the job the scheduler drives.
type Runner interface {
	Run(ctx context.Context, frequency string) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, frequency string) error

func (f RunnerFunc) Run(ctx context.Context, frequency string) error { return f(ctx, frequency) }

const jobTimeout = 10 * time.Minute

// Schedules maps reminder frequencies to cron specs.
var Schedules = map[string]string{
	models.ReminderDaily:  "@daily",
	models.ReminderWeekly: "@weekly",
}

// StartReminderCronJobs registers the daily and weekly reminder scans and starts the scheduler.
// Stop the returned cron to shut it down.
func StartReminderCronJobs(runner Runner) (*cron.Cron, error) {
	c := cron.New()
	for frequency, spec := range Schedules {
		frequency := frequency
		if _, err := c.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := runner.Run(ctx, frequency); err != nil {
				logger.Log.WithError(err).WithField("frequency", frequency).Error("Reminder scan failed")
			}
		}); err != nil {
			return nil, err
		}
	}

	c.Start()
	logger.Log.WithField("jobs", len(c.Entries())).Info("Reminder cron jobs started")
	return c, nil
}
