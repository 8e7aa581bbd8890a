package task

import "time"

// Status enumerates the workflow states a task moves through.
type Status string

const (
	StatusOpen  Status = "open"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Valid reports whether s is one of the known task statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Task is a single to-do item.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Status    Status     `json:"status"`
	DueAt     *time.Time `json:"dueAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
