package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for form and styling inputs.
const (
	maxFormNameLen    = 200
	maxFormDescLen    = 1_000
	maxFormSchemaLen  = 200_000
	maxStyleNameLen   = 100
	maxStyleValueLen  = 500
	maxStyleBatchSize = 200
)

// validateForm checks form inputs and returns the first error found.
func validateForm(name, description string, schemaLen int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxFormNameLen {
		return "Name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(description) > maxFormDescLen {
		return "Description is too long (max 1,000 characters)."
	}
	if schemaLen > maxFormSchemaLen {
		return "Schema is too large (max 200,000 bytes)."
	}
	return ""
}

// validateStyleUpdates checks a styling update batch and returns the first
// error found. Unknown property names are NOT rejected here: the styling
// service skips them per its leniency policy. This only bounds sizes so a
// single request cannot store unbounded data.
func validateStyleUpdates(updates map[string]string) string {
	if len(updates) > maxStyleBatchSize {
		return "Too many properties in one update (max 200)."
	}
	for name, value := range updates {
		if strings.TrimSpace(name) == "" {
			return "Property names must not be empty."
		}
		if utf8.RuneCountInString(name) > maxStyleNameLen {
			return "Property name is too long (max 100 characters)."
		}
		if utf8.RuneCountInString(value) > maxStyleValueLen {
			return "Property value is too long (max 500 characters)."
		}
	}
	return ""
}
