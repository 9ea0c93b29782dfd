package models

// AnalyticsSummary aggregates a user's records at request time.
type AnalyticsSummary struct {
	UserID               int64 `json:"user_id"`
	GoalsTotal           int   `json:"goals_total"`
	GoalsCompleted       int   `json:"goals_completed"`
	TasksTotal           int   `json:"tasks_total"`
	TasksCompleted       int   `json:"tasks_completed"`
	HabitsTotal          int   `json:"habits_total"`
	HabitsTrackedToday   int   `json:"habits_tracked_today"`
	BrainDumpUnprocessed int   `json:"brain_dump_unprocessed"`
}
