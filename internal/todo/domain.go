package todo

import "time"

// Status enumerates the workflow states a todo can be in. Any state may
// transition to any other; no ordering is enforced.
type Status string

const (
	// StatusNotStarted marks work not yet begun.
	StatusNotStarted Status = "NotStarted"
	// StatusOnGoing marks work in progress.
	StatusOnGoing Status = "OnGoing"
	// StatusCompleted marks finished work.
	StatusCompleted Status = "Completed"
)

// ValidStatus reports whether s is one of the enumerated states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNotStarted, StatusOnGoing, StatusCompleted:
		return true
	}
	return false
}

// Todo represents a task record owned by a single user. The JSON field names
// mirror the persisted column names.
type Todo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     int64     `json:"userid"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"updated"`
	Status      Status    `json:"status"`
}

// Input carries the caller-supplied fields for create and update operations.
type Input struct {
	Name        string
	Description *string
	OwnerID     int64
	Status      Status
}
