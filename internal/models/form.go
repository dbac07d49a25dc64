// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Form represents a published or draft form designed in the builder.
// The field schema is stored as opaque JSON: the styling engine never
// inspects it, and the editor UI owns its shape.
type Form struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description,omitempty"`
	Schema      json.RawMessage `json:"schema,omitempty"`
	IsPublished bool            `json:"is_published"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DOMID returns the CSS-safe DOM id the form is rendered under.
// UUIDs may start with a digit, which is not a valid CSS identifier,
// so the id is prefixed.
func (f *Form) DOMID() string {
	return "form-" + f.ID.String()
}
