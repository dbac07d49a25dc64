// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"formpress/internal/models"
	"formpress/internal/styling"
)

// StyleDefaultStore reads the global style default catalogs. Defaults are
// deploy-time reference data: the request path only ever reads them.
//
// The legacy "variables" and newer "tokens" catalogs live in separate,
// structurally identical tables; one store serves both, selected by the
// catalog parameter.
type StyleDefaultStore struct {
	db *sql.DB
}

// NewStyleDefaultStore creates a new StyleDefaultStore.
func NewStyleDefaultStore(db *sql.DB) *StyleDefaultStore {
	return &StyleDefaultStore{db: db}
}

// defaultsTable maps a catalog to its defaults table.
func defaultsTable(catalog styling.Catalog) string {
	if catalog == styling.CatalogLegacy {
		return "style_variable_defaults"
	}
	return "style_token_defaults"
}

// defaultColumns lists the columns selected in default queries.
const defaultColumns = `name, default_value, category, data_type, display_name, description, is_user_editable, created_at, updated_at`

// scanDefault scans a style default row from the result set.
func scanDefault(scanner interface{ Scan(...any) error }) (*models.StyleDefault, error) {
	var d models.StyleDefault
	err := scanner.Scan(&d.Name, &d.DefaultValue, &d.Category, &d.DataType, &d.DisplayName, &d.Description, &d.IsUserEditable, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all non-deleted defaults for one catalog, ordered by
// category then name. The ordering is part of the contract: reproducible
// output and stable UI grouping depend on it.
func (s *StyleDefaultStore) List(catalog styling.Catalog) ([]models.StyleDefault, error) {
	rows, err := s.db.Query(`
		SELECT ` + defaultColumns + `
		FROM ` + defaultsTable(catalog) + `
		WHERE deleted_at IS NULL
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list %s defaults: %w", catalog, err)
	}
	defer rows.Close()

	var items []models.StyleDefault
	for rows.Next() {
		d, err := scanDefault(rows)
		if err != nil {
			return nil, fmt.Errorf("scan style default: %w", err)
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// ListEditable returns the user-editable subset of a catalog, in the same
// ordering as List. Non-editable entries are internal palette constants
// and must never reach user-facing listings or update paths.
func (s *StyleDefaultStore) ListEditable(catalog styling.Catalog) ([]models.StyleDefault, error) {
	rows, err := s.db.Query(`
		SELECT ` + defaultColumns + `
		FROM ` + defaultsTable(catalog) + `
		WHERE deleted_at IS NULL AND is_user_editable = TRUE
		ORDER BY category, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list editable %s defaults: %w", catalog, err)
	}
	defer rows.Close()

	var items []models.StyleDefault
	for rows.Next() {
		d, err := scanDefault(rows)
		if err != nil {
			return nil, fmt.Errorf("scan style default: %w", err)
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// FindByName retrieves a single non-deleted default. Returns nil if not found.
func (s *StyleDefaultStore) FindByName(catalog styling.Catalog, name string) (*models.StyleDefault, error) {
	row := s.db.QueryRow(`
		SELECT `+defaultColumns+`
		FROM `+defaultsTable(catalog)+`
		WHERE name = $1 AND deleted_at IS NULL
	`, name)
	d, err := scanDefault(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s default by name: %w", catalog, err)
	}
	return d, nil
}
