package services

import (
	"context"
	"time"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// HabitService adds progress logging on top of the habit CRUD operations.
type HabitService struct {
	*CRUDService[*models.Habit, models.HabitCreate, models.HabitUpdate]
	progress *ProgressService
}

func NewHabitService(store repository.Store[*models.Habit], progress *ProgressService) *HabitService {
	return &HabitService{
		CRUDService: NewCRUDService(store, "Habit", buildHabit, mergeHabit),
		progress:    progress,
	}
}

func buildHabit(userID int64, createdAt time.Time, in models.HabitCreate) *models.Habit {
	return &models.Habit{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Frequency:   in.Frequency,
		GoalID:      in.GoalID,
		CreatedAt:   createdAt,
	}
}

func mergeHabit(h *models.Habit, in models.HabitUpdate) {
	if in.Name != nil {
		h.Name = *in.Name
	}
	in.Description.Apply(&h.Description)
	if in.Frequency != nil {
		h.Frequency = *in.Frequency
	}
	in.GoalID.Apply(&h.GoalID)
}

// LogProgress records a progress event against one of the user's habits. The habit id from
// the path wins over any habit_id in the payload; task_id and goal_id are kept as sent.
func (s *HabitService) LogProgress(ctx context.Context, userID, habitID int64, in models.ProgressEventCreate) (*models.ProgressEvent, error) {
	if _, err := s.Get(ctx, userID, habitID); err != nil {
		return nil, err
	}

	in.HabitID = &habitID
	event, err := s.progress.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("habit_id", habitID).WithField("event_date", event.EventDate.String()).Info("Habit progress logged")
	return event, nil
}

// ListProgress returns the user's progress events for one of their habits.
func (s *HabitService) ListProgress(ctx context.Context, userID, habitID int64) ([]*models.ProgressEvent, error) {
	if _, err := s.Get(ctx, userID, habitID); err != nil {
		return nil, err
	}

	events, err := s.progress.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.ProgressEvent, 0, len(events))
	for _, e := range events {
		if e.HabitID != nil && *e.HabitID == habitID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
