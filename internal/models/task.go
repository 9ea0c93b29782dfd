package models

import (
	"time"
)

// Task is a single to-do item, optionally linked to a goal.
// GoalID is not checked against existing goals.
type Task struct {
	ID          int64      `json:"id" bson:"_id"`
	UserID      int64      `json:"user_id" bson:"user_id"`
	Title       string     `json:"title" bson:"title"`
	Description *string    `json:"description" bson:"description"`
	DueDate     *time.Time `json:"due_date" bson:"due_date"`
	Completed   bool       `json:"completed" bson:"completed"`
	GoalID      *int64     `json:"goal_id" bson:"goal_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

func (t *Task) GetID() int64   { return t.ID }
func (t *Task) SetID(id int64) { t.ID = id }
func (t *Task) OwnerID() int64 { return t.UserID }

type TaskCreate struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Completed   bool       `json:"completed"`
	GoalID      *int64     `json:"goal_id"`
}

type TaskUpdate struct {
	Title       *string             `json:"title"`
	Description Nullable[string]    `json:"description"`
	DueDate     Nullable[time.Time] `json:"due_date"`
	Completed   *bool               `json:"completed"`
	GoalID      Nullable[int64]     `json:"goal_id"`
}
