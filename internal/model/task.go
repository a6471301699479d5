package model

import "time"

// Priority is the urgency of a task. Only the three values below are
// valid; the dto layer rejects anything else before it reaches storage.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is stored when a task is created without one.
const DefaultPriority = PriorityMedium

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item owned by a user. It corresponds to a row
// in the `tasks` table. Deleting the owning user removes the task, and
// deleting the task removes its task_tags rows.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – owner of the task.
//	Title       – short summary (at most 200 characters).
//	Description – free text, empty when not provided.
//	Completed   – whether the task is done.
//	Priority    – low, medium or high.
//	DueDate     – optional deadline (nullable).
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – refreshed on every update.
type Task struct {
	ID          uint64     // tasks.id
	UserID      uint64     // tasks.user_id
	Title       string     // tasks.title
	Description string     // tasks.description
	Completed   bool       // tasks.completed
	Priority    Priority   // tasks.priority
	DueDate     *time.Time // tasks.due_date (nullable)
	CreatedAt   time.Time  // tasks.created_at
	UpdatedAt   time.Time  // tasks.updated_at
}

// TaskFilter narrows a task listing. Zero values mean "no filter".
type TaskFilter struct {
	Completed *bool
	Priority  Priority
	TagID     uint64
}
