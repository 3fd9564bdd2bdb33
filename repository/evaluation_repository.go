package repository

import (
	"context"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EvaluationRepository handles database operations for evaluations
type EvaluationRepository struct {
	db *pgxpool.Pool
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *pgxpool.Pool) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Create creates a new evaluation
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	query := `
		INSERT INTO evaluations (
			project_id, document_id, field_name, ai_value, human_value,
			match_score, normalized_match
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		evaluation.ProjectID,
		evaluation.DocumentID,
		evaluation.FieldName,
		evaluation.AIValue,
		evaluation.HumanValue,
		evaluation.MatchScore,
		evaluation.NormalizedMatch,
	).Scan(&evaluation.ID, &evaluation.CreatedAt)

	return err
}

// ListByProject retrieves all evaluations of a project, oldest first
func (r *EvaluationRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Evaluation, error) {
	query := `
		SELECT id, project_id, document_id, field_name, ai_value, human_value,
			match_score, normalized_match, created_at
		FROM evaluations
		WHERE project_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []*models.Evaluation
	for rows.Next() {
		evaluation := &models.Evaluation{}
		err := rows.Scan(
			&evaluation.ID,
			&evaluation.ProjectID,
			&evaluation.DocumentID,
			&evaluation.FieldName,
			&evaluation.AIValue,
			&evaluation.HumanValue,
			&evaluation.MatchScore,
			&evaluation.NormalizedMatch,
			&evaluation.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		evaluations = append(evaluations, evaluation)
	}

	return evaluations, rows.Err()
}
