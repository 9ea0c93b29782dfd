package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
)

// AnalyticsService computes per-user counts on demand from the record stores.
type AnalyticsService struct {
	goals     repository.Store[*models.Goal]
	tasks     repository.Store[*models.Task]
	habits    repository.Store[*models.Habit]
	progress  repository.Store[*models.ProgressEvent]
	brainDump repository.Store[*models.BrainDumpItem]
}

func NewAnalyticsService(
	goals repository.Store[*models.Goal],
	tasks repository.Store[*models.Task],
	habits repository.Store[*models.Habit],
	progress repository.Store[*models.ProgressEvent],
	brainDump repository.Store[*models.BrainDumpItem],
) *AnalyticsService {
	return &AnalyticsService{goals: goals, tasks: tasks, habits: habits, progress: progress, brainDump: brainDump}
}

// Summary counts the user's records. "Today" is the UTC calendar day of now.
func (s *AnalyticsService) Summary(ctx context.Context, userID int64, now time.Time) (*models.AnalyticsSummary, error) {
	summary := &models.AnalyticsSummary{UserID: userID}

	goals, err := s.goals.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}
	summary.GoalsTotal = len(goals)
	for _, g := range goals {
		if g.Status == models.GoalStatusCompleted {
			summary.GoalsCompleted++
		}
	}

	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	summary.TasksTotal = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			summary.TasksCompleted++
		}
	}

	habits, err := s.habits.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count habits: %w", err)
	}
	summary.HabitsTotal = len(habits)

	owned := make(map[int64]bool, len(habits))
	for _, h := range habits {
		owned[h.ID] = true
	}
	events, err := s.progress.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count progress: %w", err)
	}
	today := models.DateOf(now.UTC())
	tracked := make(map[int64]bool)
	for _, e := range events {
		if e.HabitID != nil && owned[*e.HabitID] && e.EventDate.Equal(today) {
			tracked[*e.HabitID] = true
		}
	}
	summary.HabitsTrackedToday = len(tracked)

	items, err := s.brainDump.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count brain dump items: %w", err)
	}
	for _, b := range items {
		if !b.Processed {
			summary.BrainDumpUnprocessed++
		}
	}

	return summary, nil
}
