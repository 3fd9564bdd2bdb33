package repository

import (
	"context"
	"fmt"

	"tabreview-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FieldTemplateRepository handles database operations for field templates
type FieldTemplateRepository struct {
	db *pgxpool.Pool
}

// NewFieldTemplateRepository creates a new field template repository
func NewFieldTemplateRepository(db *pgxpool.Pool) *FieldTemplateRepository {
	return &FieldTemplateRepository{db: db}
}

// Create creates a new field template
func (r *FieldTemplateRepository) Create(ctx context.Context, template *models.FieldTemplate) error {
	query := `
		INSERT INTO field_templates (
			name, description, fields, version, is_active
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		template.Name,
		template.Description,
		template.Fields,
		template.Version,
		template.IsActive,
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)

	return err
}

// GetByID retrieves a field template by ID
func (r *FieldTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FieldTemplate, error) {
	template := &models.FieldTemplate{}
	query := `
		SELECT id, name, description, fields, version, is_active, created_at, updated_at
		FROM field_templates
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&template.ID,
		&template.Name,
		&template.Description,
		&template.Fields,
		&template.Version,
		&template.IsActive,
		&template.CreatedAt,
		&template.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if template.Fields == nil {
		template.Fields = make(models.TemplateFields, 0)
	}

	return template, nil
}

// GetByNameAndVersion retrieves a field template by its unique name and version
func (r *FieldTemplateRepository) GetByNameAndVersion(ctx context.Context, name string, version int) (*models.FieldTemplate, error) {
	template := &models.FieldTemplate{}
	query := `
		SELECT id, name, description, fields, version, is_active, created_at, updated_at
		FROM field_templates
		WHERE name = $1 AND version = $2`

	err := r.db.QueryRow(ctx, query, name, version).Scan(
		&template.ID,
		&template.Name,
		&template.Description,
		&template.Fields,
		&template.Version,
		&template.IsActive,
		&template.CreatedAt,
		&template.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return template, nil
}

// List retrieves field templates ordered by creation time, newest first
func (r *FieldTemplateRepository) List(ctx context.Context, limit, offset int) ([]*models.FieldTemplate, error) {
	query := `
		SELECT id, name, description, fields, version, is_active, created_at, updated_at
		FROM field_templates
		ORDER BY created_at DESC`

	args := []interface{}{}
	argIndex := 1

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*models.FieldTemplate
	for rows.Next() {
		template := &models.FieldTemplate{}
		err := rows.Scan(
			&template.ID,
			&template.Name,
			&template.Description,
			&template.Fields,
			&template.Version,
			&template.IsActive,
			&template.CreatedAt,
			&template.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if template.Fields == nil {
			template.Fields = make(models.TemplateFields, 0)
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}
