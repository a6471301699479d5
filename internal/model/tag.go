package model

import "time"

// DefaultTagColor is used when a tag is created without a color.
const DefaultTagColor = "#3B82F6"

// Tag is a user-defined label that can be attached to many tasks.
// It corresponds to a row in the `tags` table.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – owner of the tag.
//	Name      – label text (at most 50 characters).
//	Color     – hex color such as #3B82F6.
//	CreatedAt – creation timestamp.
type Tag struct {
	ID        uint64    // tags.id
	UserID    uint64    // tags.user_id
	Name      string    // tags.name
	Color     string    // tags.color
	CreatedAt time.Time // tags.created_at
}

// TaskTag links a task to a tag. The pair is the primary key of the
// `task_tags` table and both sides cascade on delete.
type TaskTag struct {
	TaskID uint64 // task_tags.task_id
	TagID  uint64 // task_tags.tag_id
}
