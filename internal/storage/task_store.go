// ABOUTME: TaskStore persists research task status rows in the document store
// ABOUTME: Supports creation, atomic status updates, lookup, filtered listing, and deletion
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/bookscout/internal/charm"
	"github.com/harper/bookscout/internal/models"
)

// TaskStore manages TaskRecords under the task: key prefix
type TaskStore struct {
	kv KV
}

// NewTaskStore creates a TaskStore over the given document store
func NewTaskStore(kv KV) *TaskStore {
	return &TaskStore{kv: kv}
}

// Create inserts a new task in WORKING state with a store-assigned id
func (s *TaskStore) Create(title, otherInfo string) (*models.TaskRecord, error) {
	task := &models.TaskRecord{
		ID:        uuid.New().String(),
		Title:     title,
		OtherInfo: otherInfo,
		Status:    models.StatusWorking,
		StartedAt: time.Now(),
	}

	if err := s.kv.SetJSON(charm.TaskKey(task.ID), task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Get retrieves a task by id
func (s *TaskStore) Get(id string) (*models.TaskRecord, error) {
	var task models.TaskRecord
	if err := s.kv.GetJSON(charm.TaskKey(id), &task); err != nil {
		if errors.Is(err, charm.ErrNotFound) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return &task, nil
}

// ListAll returns every task record
func (s *TaskStore) ListAll() ([]models.TaskRecord, error) {
	keys, err := s.kv.ListKeys(charm.TaskPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list task keys: %w", err)
	}

	tasks := []models.TaskRecord{}
	for _, key := range keys {
		var task models.TaskRecord
		if err := s.kv.GetJSON(key, &task); err != nil {
			// Deleted between list and get
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ListByStatus returns every task record with the given status
func (s *TaskStore) ListByStatus(status models.TaskStatus) ([]models.TaskRecord, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown task status %q", status)
	}

	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	tasks := []models.TaskRecord{}
	for _, task := range all {
		if task.Status == status {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

// UpdateStatus sets the task's status with a single write. One task has one
// writer under normal operation; a concurrent update is last-write-wins.
func (s *TaskStore) UpdateStatus(id string, status models.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown task status %q", status)
	}

	task, err := s.Get(id)
	if err != nil {
		return err
	}

	task.Status = status
	if err := s.kv.SetJSON(charm.TaskKey(id), task); err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	return nil
}

// Delete removes a task by id
func (s *TaskStore) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.kv.Delete(charm.TaskKey(id)); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}

// DeleteAll removes every task record
func (s *TaskStore) DeleteAll() error {
	keys, err := s.kv.ListKeys(charm.TaskPrefix)
	if err != nil {
		return fmt.Errorf("failed to list task keys: %w", err)
	}
	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
