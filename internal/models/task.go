// ABOUTME: TaskRecord tracks one asynchronous research job through its lifecycle
// ABOUTME: Status moves WORKING -> SUCCESS or FAILURE and never backward
package models

import "time"

// TaskStatus is the lifecycle state of a research task.
type TaskStatus string

const (
	StatusWorking TaskStatus = "working"
	StatusSuccess TaskStatus = "success"
	StatusFailure TaskStatus = "failure"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusWorking, StatusSuccess, StatusFailure:
		return true
	}
	return false
}

// TaskRecord is the persisted status row for one asynchronous research job.
// Exactly one writer (the background unit running the task) transitions it.
type TaskRecord struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	OtherInfo string     `json:"other_info,omitempty"`
	Status    TaskStatus `json:"status"`
	StartedAt time.Time  `json:"started_at"`
}
