// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"formpress/internal/models"
	"formpress/internal/styling"
)

// StyleOverrideStore manages per-form style override rows for both
// catalogs. Rows are uniquely keyed by (form_id, name) so every write is
// an idempotent upsert, and deletion is soft so a reset can be undone at
// the database level if needed.
type StyleOverrideStore struct {
	db *sql.DB
}

// NewStyleOverrideStore creates a new StyleOverrideStore.
func NewStyleOverrideStore(db *sql.DB) *StyleOverrideStore {
	return &StyleOverrideStore{db: db}
}

// overridesTable maps a catalog to its overrides table.
func overridesTable(catalog styling.Catalog) string {
	if catalog == styling.CatalogLegacy {
		return "style_variable_overrides"
	}
	return "style_token_overrides"
}

// overrideColumns lists the columns selected in override queries.
const overrideColumns = `id, form_id, name, value, created_at, updated_at`

// scanOverride scans a style override row from the result set.
func scanOverride(scanner interface{ Scan(...any) error }) (*models.StyleOverride, error) {
	var o models.StyleOverride
	err := scanner.Scan(&o.ID, &o.FormID, &o.Name, &o.Value, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByForm returns all non-deleted overrides for one form and catalog,
// ordered by name for deterministic output.
func (s *StyleOverrideStore) ListByForm(catalog styling.Catalog, formID uuid.UUID) ([]models.StyleOverride, error) {
	rows, err := s.db.Query(`
		SELECT `+overrideColumns+`
		FROM `+overridesTable(catalog)+`
		WHERE form_id = $1 AND deleted_at IS NULL
		ORDER BY name
	`, formID)
	if err != nil {
		return nil, fmt.Errorf("list %s overrides: %w", catalog, err)
	}
	defer rows.Close()

	var items []models.StyleOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scan style override: %w", err)
		}
		items = append(items, *o)
	}
	return items, rows.Err()
}

// Upsert creates or updates the override for (form_id, name). A conflict
// on the composite key updates the value, bumps updated_at, and clears
// deleted_at so a previously reset row is revived in place.
func (s *StyleOverrideStore) Upsert(catalog styling.Catalog, formID uuid.UUID, name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO `+overridesTable(catalog)+` (form_id, name, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (form_id, name)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW(), deleted_at = NULL
	`, formID, name, value)
	if err != nil {
		return fmt.Errorf("upsert %s override: %w", catalog, err)
	}
	return nil
}

// DeleteByForm soft-deletes every override for one form and catalog.
func (s *StyleOverrideStore) DeleteByForm(catalog styling.Catalog, formID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE `+overridesTable(catalog)+`
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE form_id = $1 AND deleted_at IS NULL
	`, formID)
	if err != nil {
		return fmt.Errorf("delete %s overrides: %w", catalog, err)
	}
	return nil
}

// HasAny reports whether the form has at least one non-deleted override in
// the catalog. Used by the idempotent initialization check.
func (s *StyleOverrideStore) HasAny(catalog styling.Catalog, formID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM `+overridesTable(catalog)+`
			WHERE form_id = $1 AND deleted_at IS NULL
		)
	`, formID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check %s overrides: %w", catalog, err)
	}
	return exists, nil
}

// FindByName retrieves one non-deleted override. Returns nil if not found.
func (s *StyleOverrideStore) FindByName(catalog styling.Catalog, formID uuid.UUID, name string) (*models.StyleOverride, error) {
	row := s.db.QueryRow(`
		SELECT `+overrideColumns+`
		FROM `+overridesTable(catalog)+`
		WHERE form_id = $1 AND name = $2 AND deleted_at IS NULL
	`, formID, name)
	o, err := scanOverride(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s override: %w", catalog, err)
	}
	return o, nil
}
