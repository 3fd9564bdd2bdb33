package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TemplateField declares one field a template extracts from each document
type TemplateField struct {
	Name        string `json:"name"`
	FieldType   string `json:"field_type"` // "TEXT", "DATE", "CURRENCY", "BOOLEAN", "ENTITY"
	Description string `json:"description,omitempty"`
}

// TemplateFields represents the ordered list of fields in a template
type TemplateFields []TemplateField

// Value implements driver.Valuer for JSONB
func (f TemplateFields) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB
func (f *TemplateFields) Scan(value interface{}) error {
	if value == nil {
		*f = make(TemplateFields, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*f = make(TemplateFields, 0)
		return nil
	}

	if len(bytes) == 0 {
		*f = make(TemplateFields, 0)
		return nil
	}

	return json.Unmarshal(bytes, f)
}

// FieldTemplate represents a versioned, reusable set of extraction fields
type FieldTemplate struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Fields      TemplateFields `json:"fields"`
	Version     int            `json:"version"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
