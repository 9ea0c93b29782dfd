package models

import (
	"time"
)

// BrainDumpItem is a free-form note waiting to be turned into a task or goal.
type BrainDumpItem struct {
	ID        int64     `json:"id" bson:"_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	Content   string    `json:"content" bson:"content"`
	Processed bool      `json:"processed" bson:"processed"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (b *BrainDumpItem) GetID() int64   { return b.ID }
func (b *BrainDumpItem) SetID(id int64) { b.ID = id }
func (b *BrainDumpItem) OwnerID() int64 { return b.UserID }

type BrainDumpItemCreate struct {
	Content   string `json:"content" validate:"required"`
	Processed bool   `json:"processed"`
}

type BrainDumpItemUpdate struct {
	Content   *string `json:"content"`
	Processed *bool   `json:"processed"`
}

// Promotion targets for a brain-dump item.
const (
	PromoteToTask = "task"
	PromoteToGoal = "goal"
)
