package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// seedDefault is one row of a default catalog seed.
type seedDefault struct {
	Name         string
	DefaultValue string
	Category     string
	DataType     string
	DisplayName  string
	Description  string
	Editable     bool
}

// TokenDefaults is the deploy-time seed for the tokens catalog. The
// editable values mirror the fallback literals baked into the CSS
// generator's structural rules, so on a fresh install the emitted var()
// fallbacks and the catalog defaults agree (generator_test pins this).
var TokenDefaults = []seedDefault{
	// Layout
	{"--form-max-width", "640px", "layout", "size", "Form width", "Maximum width of the form container", true},
	{"--form-padding", "2rem", "layout", "spacing", "Form padding", "Inner padding of the form container", true},
	{"--form-background-color", "#ffffff", "layout", "color", "Background", "Form container background color", true},
	{"--form-border-radius", "0.5rem", "layout", "border", "Corner radius", "Rounding of the form container corners", true},
	{"--form-shadow", "0 1px 3px rgba(0, 0, 0, 0.1)", "layout", "shadow", "Shadow", "Drop shadow of the form container", true},

	// Fields
	{"--form-field-spacing", "1.5rem", "fields", "spacing", "Field spacing", "Vertical space between fields", true},

	// Labels
	{"--form-label-spacing", "0.5rem", "labels", "spacing", "Label spacing", "Space between a label and its input", true},
	{"--form-label-font-size", "0.875rem", "labels", "font", "Label size", "Font size of field labels", true},
	{"--form-label-font-weight", "500", "labels", "font", "Label weight", "Font weight of field labels", true},
	{"--form-label-color", "#374151", "labels", "color", "Label color", "Text color of field labels", true},

	// Inputs
	{"--form-input-height", "3rem", "inputs", "size", "Input height", "Height of single-line inputs", true},
	{"--form-input-padding", "0.75rem", "inputs", "spacing", "Input padding", "Inner padding of inputs", true},
	{"--form-input-font-size", "1rem", "inputs", "font", "Input text size", "Font size of input text", true},
	{"--form-input-text-color", "#111827", "inputs", "color", "Input text color", "Text color inside inputs", true},
	{"--form-input-background", "#ffffff", "inputs", "color", "Input background", "Background color of inputs", true},
	{"--form-input-border", "1px solid #d1d5db", "inputs", "border", "Input border", "Border of inputs", true},
	{"--form-input-border-radius", "0.375rem", "inputs", "border", "Input corner radius", "Rounding of input corners", true},
	{"--form-textarea-min-height", "6rem", "inputs", "size", "Textarea height", "Minimum height of multi-line inputs", true},
	{"--form-input-focus-border-color", "#2563eb", "inputs", "color", "Focus border", "Border color of a focused input", true},
	{"--form-input-focus-shadow", "0 0 0 3px rgba(37, 99, 235, 0.2)", "inputs", "shadow", "Focus ring", "Shadow ring around a focused input", true},

	// Validation
	{"--form-error-color", "#dc2626", "validation", "color", "Error color", "Color of error borders and messages", true},
	{"--form-error-font-size", "0.75rem", "validation", "font", "Error text size", "Font size of validation messages", true},

	// Buttons
	{"--form-button-height", "3rem", "buttons", "size", "Button height", "Height of the submit button", true},
	{"--form-button-padding", "0 1.5rem", "buttons", "spacing", "Button padding", "Horizontal padding of the submit button", true},
	{"--form-button-font-size", "1rem", "buttons", "font", "Button text size", "Font size of the submit button", true},
	{"--form-button-font-weight", "600", "buttons", "font", "Button weight", "Font weight of the submit button", true},
	{"--form-button-text-color", "#ffffff", "buttons", "color", "Button text", "Text color of the submit button", true},
	{"--form-button-background", "#2563eb", "buttons", "color", "Button background", "Background color of the submit button", true},
	{"--form-button-border-radius", "0.375rem", "buttons", "border", "Button corner radius", "Rounding of the submit button", true},
	{"--form-button-hover-background", "#1d4ed8", "buttons", "color", "Button hover", "Background color of the hovered button", true},

	// Internal palette constants. Not user-editable: they exist so other
	// defaults can be re-themed in bulk, and never appear in editor UIs.
	{"--form-palette-primary-500", "#2563eb", "palette", "color", "Primary 500", "", false},
	{"--form-palette-primary-600", "#1d4ed8", "palette", "color", "Primary 600", "", false},
	{"--form-palette-gray-300", "#d1d5db", "palette", "color", "Gray 300", "", false},
	{"--form-palette-gray-700", "#374151", "palette", "color", "Gray 700", "", false},
	{"--form-palette-red-600", "#dc2626", "palette", "color", "Red 600", "", false},
}

// VariableDefaults is the deploy-time seed for the legacy variables
// catalog. The catalog is being phased out in favor of tokens; it stays
// seeded so forms that still carry variable overrides keep rendering.
var VariableDefaults = []seedDefault{
	{"--fp-primary-color", "#2563eb", "general", "color", "Primary color", "Accent color for buttons and focus states", true},
	{"--fp-background", "#ffffff", "general", "color", "Background", "Form background color", true},
	{"--fp-text-color", "#111827", "general", "color", "Text color", "Base text color", true},
	{"--fp-font-family", "system-ui, sans-serif", "general", "font", "Font family", "Base font stack", true},
	{"--fp-input-height", "3rem", "inputs", "size", "Input height", "Height of single-line inputs", true},
	{"--fp-border-radius", "0.375rem", "general", "border", "Corner radius", "Rounding of inputs and buttons", true},
	{"--fp-show-labels", "true", "labels", "boolean", "Show labels", "Whether field labels are rendered", true},
	{"--fp-layout-direction", "column", "general", "direction", "Layout direction", "Stacking direction of fields", true},
}

// Seed populates both style default catalogs. It runs on every startup
// and skips any catalog that already has rows, so deployments can add new
// defaults through migrations without the seed fighting them.
func Seed(db *sql.DB) error {
	if err := seedCatalog(db, "style_token_defaults", TokenDefaults); err != nil {
		return err
	}
	if err := seedCatalog(db, "style_variable_defaults", VariableDefaults); err != nil {
		return err
	}
	return nil
}

// seedCatalog inserts a default catalog if its table is empty.
func seedCatalog(db *sql.DB, table string, defaults []seedDefault) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		return fmt.Errorf("seed check %s: %w", table, err)
	}
	if count > 0 {
		slog.Info("default catalog already seeded, skipping", "table", table)
		return nil
	}

	for _, d := range defaults {
		_, err := db.Exec(`
			INSERT INTO `+table+` (name, default_value, category, data_type, display_name, description, is_user_editable)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, d.Name, d.DefaultValue, d.Category, d.DataType, d.DisplayName, d.Description, d.Editable)
		if err != nil {
			return fmt.Errorf("seed insert %s %s: %w", table, d.Name, err)
		}
	}

	slog.Info("default catalog seeded", "table", table, "count", len(defaults))
	return nil
}

// SeedDemo creates a sample form for development environments so the
// editor and the CSS endpoint have something to work with out of the box.
// No-op if any form exists.
func SeedDemo(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM forms`).Scan(&count); err != nil {
		return fmt.Errorf("seed check forms: %w", err)
	}
	if count > 0 {
		slog.Info("forms already present, skipping demo seed")
		return nil
	}

	var formID string
	err := db.QueryRow(`
		INSERT INTO forms (name, slug, description, schema)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "Contact us", "contact-us", "Demo contact form",
		`{"fields":[{"name":"email","type":"email","label":"Email"},{"name":"message","type":"textarea","label":"Message"}]}`,
	).Scan(&formID)
	if err != nil {
		return fmt.Errorf("seed demo form: %w", err)
	}

	// Materialize editable token defaults as the form's initial overrides,
	// same as the styling service does on form creation.
	_, err = db.Exec(`
		INSERT INTO style_token_overrides (form_id, name, value)
		SELECT $1, name, default_value
		FROM style_token_defaults
		WHERE deleted_at IS NULL AND is_user_editable = TRUE
	`, formID)
	if err != nil {
		return fmt.Errorf("seed demo overrides: %w", err)
	}

	slog.Info("database seeded with demo form", "slug", "contact-us")
	return nil
}
