package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dias221467/goai-backend/internal/apperrors"
	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
	"github.com/Dias221467/goai-backend/pkg/logger"
)

// BrainDumpService manages free-form notes and turns them into tasks or goals.
type BrainDumpService struct {
	*CRUDService[*models.BrainDumpItem, models.BrainDumpItemCreate, models.BrainDumpItemUpdate]
	tasks *TaskService
	goals *GoalService
}

func NewBrainDumpService(store repository.Store[*models.BrainDumpItem], tasks *TaskService, goals *GoalService) *BrainDumpService {
	return &BrainDumpService{
		CRUDService: NewCRUDService(store, "Brain dump item", buildBrainDump, mergeBrainDump),
		tasks:       tasks,
		goals:       goals,
	}
}

func buildBrainDump(userID int64, createdAt time.Time, in models.BrainDumpItemCreate) *models.BrainDumpItem {
	return &models.BrainDumpItem{
		UserID:    userID,
		Content:   in.Content,
		Processed: in.Processed,
		CreatedAt: createdAt,
	}
}

func mergeBrainDump(b *models.BrainDumpItem, in models.BrainDumpItemUpdate) {
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.Processed != nil {
		b.Processed = *in.Processed
	}
}

// MarkProcessed flags the item as handled.
func (s *BrainDumpService) MarkProcessed(ctx context.Context, userID, id int64) (*models.BrainDumpItem, error) {
	processed := true
	return s.Update(ctx, userID, id, models.BrainDumpItemUpdate{Processed: &processed})
}

// Promote creates a task (the default) or a goal from the item's content and marks the item
// processed. It returns the created record.
func (s *BrainDumpService) Promote(ctx context.Context, userID, id int64, target string) (interface{}, error) {
	if target == "" {
		target = models.PromoteToTask
	}
	if target != models.PromoteToTask && target != models.PromoteToGoal {
		return nil, apperrors.Validation(fmt.Sprintf("to must be one of: %s, %s", models.PromoteToTask, models.PromoteToGoal))
	}

	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(item.Content)
	if title == "" {
		return nil, apperrors.Validation("Brain dump item has no content to promote")
	}

	var (
		created interface{}
		undo    func() error
	)
	switch target {
	case models.PromoteToGoal:
		goal, err := s.goals.Create(ctx, userID, models.GoalCreate{Title: title})
		if err != nil {
			return nil, err
		}
		created, undo = goal, func() error { return s.goals.Delete(ctx, userID, goal.ID) }
	default:
		task, err := s.tasks.Create(ctx, userID, models.TaskCreate{Title: title})
		if err != nil {
			return nil, err
		}
		created, undo = task, func() error { return s.tasks.Delete(ctx, userID, task.ID) }
	}

	if _, err := s.MarkProcessed(ctx, userID, id); err != nil {
		if undoErr := undo(); undoErr != nil {
			logger.Log.WithError(undoErr).WithField("brain_dump_id", id).Error("Failed to remove promoted record")
		}
		return nil, err
	}

	logger.Log.WithField("brain_dump_id", id).WithField("target", target).Info("Brain dump item promoted")
	return created, nil
}
