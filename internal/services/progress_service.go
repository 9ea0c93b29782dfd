package services

import (
	"time"

	"github.com/Dias221467/goai-backend/internal/models"
	"github.com/Dias221467/goai-backend/internal/repository"
)

type ProgressService = CRUDService[*models.ProgressEvent, models.ProgressEventCreate, models.ProgressEventUpdate]

func NewProgressService(store repository.Store[*models.ProgressEvent]) *ProgressService {
	return NewCRUDService(store, "Progress event", buildProgress, mergeProgress)
}

func buildProgress(userID int64, createdAt time.Time, in models.ProgressEventCreate) *models.ProgressEvent {
	return &models.ProgressEvent{
		UserID:    userID,
		HabitID:   in.HabitID,
		TaskID:    in.TaskID,
		GoalID:    in.GoalID,
		EventDate: in.EventDate,
		Notes:     in.Notes,
		CreatedAt: createdAt,
	}
}

func mergeProgress(p *models.ProgressEvent, in models.ProgressEventUpdate) {
	if in.EventDate != nil {
		p.EventDate = *in.EventDate
	}
	in.Notes.Apply(&p.Notes)
}
