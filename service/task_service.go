package service

import (
	"context"
	"errors"

	"tabreview-backend/models"
	"tabreview-backend/repository"

	"github.com/google/uuid"
)

// TaskService tracks background work items polled over the API
type TaskService struct {
	taskRepo *repository.TaskRepository
}

// TaskServiceOption is a functional option for TaskService
type TaskServiceOption func(*TaskService)

// TaskWithTaskRepository sets the task repository
func TaskWithTaskRepository(repo *repository.TaskRepository) TaskServiceOption {
	return func(s *TaskService) {
		s.taskRepo = repo
	}
}

// NewTaskService creates a new task service
func NewTaskService(opts ...TaskServiceOption) *TaskService {
	s := &TaskService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrTaskNotFound = errors.New("task not found")
)

// CreateTask records a queued background task
func (s *TaskService) CreateTask(ctx context.Context, taskType models.TaskType, projectID *uuid.UUID) (*models.Task, error) {
	if s.taskRepo == nil {
		return nil, errors.New("task repository not set")
	}

	task := &models.Task{
		TaskType:  taskType,
		ProjectID: projectID,
		Status:    models.TaskStatusQueued,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	if s.taskRepo == nil {
		return nil, errors.New("task repository not set")
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	return task, nil
}
