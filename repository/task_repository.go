package repository

import (
	"context"
	"time"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepository handles database operations for background tasks
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			task_type, project_id, status
		) VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		task.TaskType,
		task.ProjectID,
		task.Status,
	).Scan(&task.ID, &task.CreatedAt)

	return err
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	query := `
		SELECT id, task_type, project_id, status, result, error_message,
			created_at, started_at, completed_at
		FROM tasks
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.TaskType,
		&task.ProjectID,
		&task.Status,
		&task.Result,
		&task.ErrorMessage,
		&task.CreatedAt,
		&task.StartedAt,
		&task.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return task, nil
}

// MarkProcessing marks a task as started
func (r *TaskRepository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tasks SET
			status = $2,
			started_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.TaskStatusProcessing)
	return err
}

// Complete marks a task as completed with its result
func (r *TaskRepository) Complete(ctx context.Context, id uuid.UUID, result models.TaskResult) error {
	now := time.Now()
	query := `
		UPDATE tasks SET
			status = $2,
			result = $3,
			completed_at = $4
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.TaskStatusCompleted, result, now)
	return err
}

// Fail marks a task as failed
func (r *TaskRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	now := time.Now()
	query := `
		UPDATE tasks SET
			status = $2,
			error_message = $3,
			completed_at = $4
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.TaskStatusFailed, errorMessage, now)
	return err
}
