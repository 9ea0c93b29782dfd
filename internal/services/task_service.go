package services

import (
	"time"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
)

type TaskService = CRUDService[*models.Task, models.TaskCreate, models.TaskUpdate]

func NewTaskService(store repository.Store[*models.Task]) *TaskService {
	return NewCRUDService(store, "Task", buildTask, mergeTask)
}

func buildTask(userID int64, createdAt time.Time, in models.TaskCreate) *models.Task {
	return &models.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     truncateTime(in.DueDate),
		Completed:   in.Completed,
		GoalID:      in.GoalID,
		CreatedAt:   createdAt,
	}
}

func mergeTask(t *models.Task, in models.TaskUpdate) {
	if in.Title != nil {
		t.Title = *in.Title
	}
	in.Description.Apply(&t.Description)
	if in.DueDate.Set {
		t.DueDate = truncateTime(in.DueDate.Value)
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	in.GoalID.Apply(&t.GoalID)
}

// truncateTime drops precision below what BSON stores so both backends return the
// same value that was written.
func truncateTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Millisecond)
	return &v
}
