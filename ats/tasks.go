package ats

import (
	"context"
	"time"

	"github.com/jrsteele09/go-talent-client/internal/utils"
)

const dueDateLayout = "2006-01-02"

// TaskService is the HR user's personal task list
type TaskService struct {
	service
}

func (s *TaskService) List(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := s.get(ctx, "/tasks/", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create adds a task; due is optional
func (s *TaskService) Create(ctx context.Context, title string, due *time.Time) (*Task, error) {
	payload := map[string]string{"title": title}
	if due != nil {
		payload["due_date"] = due.Format(dueDateLayout)
	}
	var task Task
	if err := s.post(ctx, "/tasks/", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Update(ctx context.Context, id int, update TaskUpdate) (*Task, error) {
	path, err := idPath("/tasks/%d/", id)
	if err != nil {
		return nil, err
	}
	var task Task
	if err := s.patch(ctx, path, update, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Complete marks a task done or not done
func (s *TaskService) Complete(ctx context.Context, id int, done bool) (*Task, error) {
	return s.Update(ctx, id, TaskUpdate{IsCompleted: utils.Ptr(done)})
}

func (s *TaskService) Delete(ctx context.Context, id int) error {
	path, err := idPath("/tasks/%d/", id)
	if err != nil {
		return err
	}
	return s.delete(ctx, path)
}
