package models

import (
	"time"
)

const (
	GoalStatusPending   = "pending"
	GoalStatusCompleted = "completed"
)

// Goal is a long-running objective. Tasks, habits and progress events may point at it.
type Goal struct {
	ID          int64     `json:"id" bson:"_id"`
	UserID      int64     `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description *string   `json:"description" bson:"description"`
	DueDate     *Date     `json:"due_date" bson:"due_date"`
	Status      string    `json:"status" bson:"status"` // free-form, "pending" until changed
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (g *Goal) GetID() int64   { return g.ID }
func (g *Goal) SetID(id int64) { g.ID = id }
func (g *Goal) OwnerID() int64 { return g.UserID }

type GoalCreate struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	DueDate     *Date   `json:"due_date"`
	Status      string  `json:"status"`
}

// GoalUpdate carries only the fields a client supplied. Description and DueDate can be
// cleared with null; null on the other fields keeps the stored value.
type GoalUpdate struct {
	Title       *string          `json:"title"`
	Description Nullable[string] `json:"description"`
	DueDate     Nullable[Date]   `json:"due_date"`
	Status      *string          `json:"status"`
}
