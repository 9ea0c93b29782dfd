// Package models defines the records stored by the tracker and the payloads that create and update them.
package models

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	GetID() int64
	SetID(id int64)
	OwnerID() int64
}

// Collection names double as storage key prefixes and id-sequence names.
const (
	CollectionUsers     = "users"
	CollectionGoals     = "goals"
	CollectionTasks     = "tasks"
	CollectionHabits    = "habits"
	CollectionProgress  = "progress_events"
	CollectionBrainDump = "brain_dump"
	CollectionSettings  = "notification_settings"
	CollectionSequences = "counters"
)
