// Package tasks implements the task feature service.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forgestack/feature_layer/internal/app/domain/task"
	"github.com/forgestack/feature_layer/internal/app/storage"
	"github.com/forgestack/feature_layer/pkg/logger"
)

// Service manages task records.
type Service struct {
	store storage.TaskStore
	log   *logger.Logger
}

// New constructs a task service.
func New(store storage.TaskStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("tasks")
	}
	return &Service{store: store, log: log}
}

// Create validates and stores a new task. An empty status defaults to open.
func (s *Service) Create(ctx context.Context, title string, status task.Status, dueAt *time.Time) (task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return task.Task{}, fmt.Errorf("title is required")
	}
	if status == "" {
		status = task.StatusOpen
	}
	if !status.Valid() {
		return task.Task{}, fmt.Errorf("invalid status %q", status)
	}

	t, err := s.store.CreateTask(ctx, task.Task{Title: title, Status: status, DueAt: dueAt})
	if err != nil {
		return task.Task{}, err
	}
	s.log.WithField("task_id", t.ID).WithField("status", string(t.Status)).Info("task created")
	return t, nil
}

// Update applies the non-nil fields to an existing task.
func (s *Service) Update(ctx context.Context, id string, title *string, status *task.Status, dueAt *time.Time) (task.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return task.Task{}, fmt.Errorf("title cannot be empty")
		}
		t.Title = trimmed
	}
	if status != nil {
		if !status.Valid() {
			return task.Task{}, fmt.Errorf("invalid status %q", *status)
		}
		t.Status = *status
	}
	if dueAt != nil {
		t.DueAt = dueAt
	}

	t, err = s.store.UpdateTask(ctx, t)
	if err != nil {
		return task.Task{}, err
	}
	s.log.WithField("task_id", t.ID).WithField("status", string(t.Status)).Info("task updated")
	return t, nil
}

// Get returns a single task by id.
func (s *Service) Get(ctx context.Context, id string) (task.Task, error) {
	return s.store.GetTask(ctx, id)
}

// List returns all tasks.
func (s *Service) List(ctx context.Context) ([]task.Task, error) {
	return s.store.ListTasks(ctx)
}

// Delete removes a task by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.WithField("task_id", id).Info("task deleted")
	return nil
}
