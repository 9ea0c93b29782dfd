package models

import (
	"time"
)

// Habit is a recurring practice. Frequency is free text such as "daily" or "mon,wed,fri".
type Habit struct {
	ID          int64     `json:"id" bson:"_id"`
	UserID      int64     `json:"user_id" bson:"user_id"`
	Name        string    `json:"name" bson:"name"`
	Description *string   `json:"description" bson:"description"`
	Frequency   string    `json:"frequency" bson:"frequency"`
	GoalID      *int64    `json:"goal_id" bson:"goal_id"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (h *Habit) GetID() int64   { return h.ID }
func (h *Habit) SetID(id int64) { h.ID = id }
func (h *Habit) OwnerID() int64 { return h.UserID }

type HabitCreate struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Frequency   string  `json:"frequency" validate:"required"`
	GoalID      *int64  `json:"goal_id"`
}

type HabitUpdate struct {
	Name        *string          `json:"name"`
	Description Nullable[string] `json:"description"`
	Frequency   *string          `json:"frequency"`
	GoalID      Nullable[int64]  `json:"goal_id"`
}
