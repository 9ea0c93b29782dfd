package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Dias221467/goai-backend/internal/metrics"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/services"
	"github.com/Dias221467/goai-backend/pkg/email"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// ReminderJob emails users a digest of their open tasks according to their notification settings.
type ReminderJob struct {
	Settings *services.SettingsService
	Tasks    *services.TaskService
	Users    *services.UserService
	Sender   email.Sender
}

// NewReminderJob creates a new instance of ReminderJob
func NewReminderJob(settings *services.SettingsService, tasks *services.TaskService, users *services.UserService, sender email.Sender) *ReminderJob {
	return &ReminderJob{Settings: settings, Tasks: tasks, Users: users, Sender: sender}
}

// RunResult summarises one scan.
type RunResult struct {
	Sent    int
	Skipped int
	Failed  int
}

// Run sends one digest per subscriber of the given frequency. Users without open tasks are
// skipped; a failure for one user is logged and the scan moves on.
func (j *ReminderJob) Run(ctx context.Context, frequency string) (RunResult, error) {
	var result RunResult

	subscribers, err := j.Settings.Subscribers(ctx, frequency)
	if err != nil {
		return result, fmt.Errorf("failed to load subscribers: %w", err)
	}

	for _, setting := range subscribers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		log := logger.Log.WithFields(logrus.Fields{"user_id": setting.UserID, "frequency": frequency})
		sent, err := j.remind(ctx, setting.UserID, frequency)
		switch {
		case err != nil:
			result.Failed++
			metrics.RemindersSent.WithLabelValues(frequency, "failure").Inc()
			log.WithError(err).Warn("Failed to send reminder")
		case sent:
			result.Sent++
			metrics.RemindersSent.WithLabelValues(frequency, "success").Inc()
		default:
			result.Skipped++
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"frequency": frequency,
		"sent":      result.Sent,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("Reminder scan completed")
	return result, nil
}

func (j *ReminderJob) remind(ctx context.Context, userID int64, frequency string) (bool, error) {
	tasks, err := j.Tasks.List(ctx, userID)
	if err != nil {
		return false, err
	}
	open := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return false, nil
	}

	user, err := j.Users.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}

	subject := fmt.Sprintf("Your %s reminder: %d open task(s)", frequency, len(open))
	if err := j.Sender.Send(ctx, user.Email, subject, digestBody(user.Username, open)); err != nil {
		return false, err
	}
	return true, nil
}

func digestBody(username string, open []*models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThese tasks are still open:\n\n", username)
	for _, t := range open {
		b.WriteString("- " + t.Title)
		if t.DueDate != nil {
			b.WriteString(" (due " + t.DueDate.UTC().Format("Jan 2") + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}
