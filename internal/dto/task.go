package dto

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/task-manager/internal/model"
)

const priorityRule = "oneof=low medium high"

// TaskCreate is the body for creating a task. Description, priority and
// due_date are optional; due_date is free text parsed when the record is
// built.
type TaskCreate struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date"`
}

// ToTask builds the record for userID, applying defaults. An unparseable
// due_date is rejected here, before any write.
func (in TaskCreate) ToTask(userID uint64) (*model.Task, error) {
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}
	priority := model.Priority(in.Priority)
	if priority == "" {
		priority = model.DefaultPriority
	}
	return &model.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     due,
	}, nil
}

// TaskUpdate is a partial update: absent fields are left alone, null
// clears a field. Title and completed cannot be cleared.
type TaskUpdate struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Completed   Optional[bool]   `json:"completed"`
	Priority    Optional[string] `json:"priority"`
	DueDate     Optional[string] `json:"due_date"`
}

func (u *TaskUpdate) check(v *validator.Validate) []FieldError {
	var out []FieldError
	if u.Title.Set {
		if u.Title.Null {
			out = append(out, FieldError{Field: "title", Message: "cannot be null"})
		} else {
			out = append(out, checkVar(v, "title", u.Title.Value, "required,max=200")...)
		}
	}
	if u.Completed.Null {
		out = append(out, FieldError{Field: "completed", Message: "cannot be null"})
	}
	if u.Priority.HasValue() {
		out = append(out, checkVar(v, "priority", u.Priority.Value, priorityRule)...)
	}
	return out
}

// Empty reports whether no field was sent.
func (u *TaskUpdate) Empty() bool {
	return !u.Title.Set && !u.Description.Set && !u.Completed.Set && !u.Priority.Set && !u.DueDate.Set
}

// Apply copies the present fields onto t. Cleared description becomes
// empty, cleared priority falls back to medium, cleared due_date is null.
func (u *TaskUpdate) Apply(t *model.Task) error {
	if u.DueDate.Set {
		var raw *string
		if !u.DueDate.Null {
			raw = &u.DueDate.Value
		}
		due, err := parseDueDate(raw)
		if err != nil {
			return err
		}
		t.DueDate = due
	}
	if u.Title.HasValue() {
		t.Title = u.Title.Value
	}
	if u.Description.Set {
		t.Description = u.Description.Value
	}
	if u.Completed.HasValue() {
		t.Completed = u.Completed.Value
	}
	if u.Priority.Set {
		t.Priority = model.Priority(u.Priority.Value)
		if u.Priority.Null || t.Priority == "" {
			t.Priority = model.DefaultPriority
		}
	}
	return nil
}

func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := model.ParseTimestamp(*raw)
	if err != nil {
		return nil, invalid("due_date", "must be an ISO 8601 date or timestamp")
	}
	return &t, nil
}

// TaskResponse is the serialized task. All timestamps go through
// Timestamp; due_date is null when unset.
type TaskResponse struct {
	ID          uint64        `json:"id"`
	UserID      uint64        `json:"user_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Completed   bool          `json:"completed"`
	Priority    string        `json:"priority"`
	DueDate     *string       `json:"due_date"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Tags        []TagResponse `json:"tags,omitempty"`
}

func NewTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     Timestamp(t.DueDate),
		CreatedAt:   timestampText(t.CreatedAt),
		UpdatedAt:   timestampText(t.UpdatedAt),
	}
}

// NewTaskResponses maps a listing.
func NewTaskResponses(ts []*model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTaskResponse(t))
	}
	return out
}
