package models

import (
	"time"
)

// ProgressEvent records that something happened on a given day.
// HabitID, TaskID and GoalID may all be set at once.
type ProgressEvent struct {
	ID        int64     `json:"id" bson:"_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	HabitID   *int64    `json:"habit_id" bson:"habit_id"`
	TaskID    *int64    `json:"task_id" bson:"task_id"`
	GoalID    *int64    `json:"goal_id" bson:"goal_id"`
	EventDate Date      `json:"event_date" bson:"event_date"`
	Notes     *string   `json:"notes" bson:"notes"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (p *ProgressEvent) GetID() int64   { return p.ID }
func (p *ProgressEvent) SetID(id int64) { p.ID = id }
func (p *ProgressEvent) OwnerID() int64 { return p.UserID }

type ProgressEventCreate struct {
	EventDate Date    `json:"event_date" validate:"required"`
	Notes     *string `json:"notes"`
	HabitID   *int64  `json:"habit_id"`
	TaskID    *int64  `json:"task_id"`
	GoalID    *int64  `json:"goal_id"`
}

// ProgressEventUpdate exists so progress events fit the generic CRUD service; no route exposes it.
type ProgressEventUpdate struct {
	EventDate *Date            `json:"event_date"`
	Notes     Nullable[string] `json:"notes"`
}
