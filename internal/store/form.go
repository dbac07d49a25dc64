// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"formpress/internal/models"
)

// FormStore handles all form database operations. Deletion is soft: rows
// keep their style overrides (also soft-deleted) so nothing is lost until
// a retention job hard-prunes them.
type FormStore struct {
	db *sql.DB
}

// NewFormStore creates a new FormStore.
func NewFormStore(db *sql.DB) *FormStore {
	return &FormStore{db: db}
}

// formColumns lists the columns selected in form queries.
const formColumns = `id, name, slug, description, schema, is_published, created_at, updated_at`

// scanForm scans a form row from the result set.
func scanForm(scanner interface{ Scan(...any) error }) (*models.Form, error) {
	var f models.Form
	var schema []byte
	err := scanner.Scan(&f.ID, &f.Name, &f.Slug, &f.Description, &schema, &f.IsPublished, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.Schema = json.RawMessage(schema)
	return &f, nil
}

// List returns all non-deleted forms ordered by creation date descending.
func (s *FormStore) List() ([]models.Form, error) {
	rows, err := s.db.Query(`
		SELECT ` + formColumns + `
		FROM forms
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	var items []models.Form
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		items = append(items, *f)
	}
	return items, rows.Err()
}

// FindByID retrieves a non-deleted form by its UUID. Returns nil if not found.
func (s *FormStore) FindByID(id uuid.UUID) (*models.Form, error) {
	row := s.db.QueryRow(`SELECT `+formColumns+` FROM forms WHERE id = $1 AND deleted_at IS NULL`, id)
	f, err := scanForm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find form by id: %w", err)
	}
	return f, nil
}

// FindBySlug retrieves a non-deleted form by its slug. Returns nil if not found.
func (s *FormStore) FindBySlug(slug string) (*models.Form, error) {
	row := s.db.QueryRow(`SELECT `+formColumns+` FROM forms WHERE slug = $1 AND deleted_at IS NULL`, slug)
	f, err := scanForm(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find form by slug: %w", err)
	}
	return f, nil
}

// Exists reports whether a non-deleted form with the given id exists.
func (s *FormStore) Exists(id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM forms WHERE id = $1 AND deleted_at IS NULL)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("form exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new form and returns it with generated fields populated.
func (s *FormStore) Create(f *models.Form) (*models.Form, error) {
	schema := []byte(f.Schema)
	if len(schema) == 0 {
		schema = []byte(`{}`)
	}
	row := s.db.QueryRow(`
		INSERT INTO forms (name, slug, description, schema)
		VALUES ($1, $2, $3, $4)
		RETURNING `+formColumns,
		f.Name, f.Slug, f.Description, schema,
	)
	created, err := scanForm(row)
	if err != nil {
		return nil, fmt.Errorf("create form: %w", err)
	}
	return created, nil
}

// Update modifies a form's name, description, and schema.
func (s *FormStore) Update(id uuid.UUID, name string, description *string, schema json.RawMessage) error {
	raw := []byte(schema)
	if len(raw) == 0 {
		raw = []byte(`{}`)
	}
	result, err := s.db.Exec(`
		UPDATE forms SET name = $1, description = $2, schema = $3, updated_at = NOW()
		WHERE id = $4 AND deleted_at IS NULL
	`, name, description, raw, id)
	if err != nil {
		return fmt.Errorf("update form: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("form not found")
	}
	return nil
}

// Publish marks a form as published.
func (s *FormStore) Publish(id uuid.UUID) error {
	result, err := s.db.Exec(`
		UPDATE forms SET is_published = TRUE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("publish form: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("form not found")
	}
	return nil
}

// SoftDelete marks a form as deleted and soft-deletes its style overrides
// in both catalogs inside one transaction, so the cascade is atomic.
func (s *FormStore) SoftDelete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE forms SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete form: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("form not found")
	}

	for _, table := range []string{"style_variable_overrides", "style_token_overrides"} {
		if _, err := tx.Exec(
			`UPDATE `+table+` SET deleted_at = NOW(), updated_at = NOW() WHERE form_id = $1 AND deleted_at IS NULL`,
			id,
		); err != nil {
			return fmt.Errorf("cascade %s: %w", table, err)
		}
	}

	return tx.Commit()
}
