package services

import (
	"time"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
)

type GoalService = CRUDService[*models.Goal, models.GoalCreate, models.GoalUpdate]

func NewGoalService(store repository.Store[*models.Goal]) *GoalService {
	return NewCRUDService(store, "Goal", buildGoal, mergeGoal)
}

func buildGoal(userID int64, createdAt time.Time, in models.GoalCreate) *models.Goal {
	status := in.Status
	if status == "" {
		status = models.GoalStatusPending
	}
	return &models.Goal{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func mergeGoal(g *models.Goal, in models.GoalUpdate) {
	if in.Title != nil {
		g.Title = *in.Title
	}
	in.Description.Apply(&g.Description)
	in.DueDate.Apply(&g.DueDate)
	if in.Status != nil {
		g.Status = *in.Status
	}
}
