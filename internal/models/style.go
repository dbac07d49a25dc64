// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// StyleDataType is an advisory hint for how the editor UI should render a
// value input. The styling engine itself treats every value as an opaque
// string and never parses by type.
type StyleDataType string

const (
	StyleDataTypeColor     StyleDataType = "color"
	StyleDataTypeSize      StyleDataType = "size"
	StyleDataTypeSpacing   StyleDataType = "spacing"
	StyleDataTypeBorder    StyleDataType = "border"
	StyleDataTypeShadow    StyleDataType = "shadow"
	StyleDataTypeFont      StyleDataType = "font"
	StyleDataTypeBoolean   StyleDataType = "boolean"
	StyleDataTypeDirection StyleDataType = "direction"
)

// StyleDefault is a globally defined stylable property and its fallback
// value, shared across all forms. Two catalogs of defaults exist, the
// legacy "variables" catalog and the newer "tokens" catalog, stored in
// separate tables but structurally identical.
//
// Non-editable defaults are internal palette constants (e.g. color-scale
// steps). They resolve and render like any other default but must never be
// offered for editing.
type StyleDefault struct {
	Name           string        `json:"name"`
	DefaultValue   string        `json:"default_value"`
	Category       string        `json:"category"`
	DataType       StyleDataType `json:"data_type"`
	DisplayName    string        `json:"display_name"`
	Description    string        `json:"description"`
	IsUserEditable bool          `json:"is_user_editable"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// StyleOverride is a per-form value that supersedes a default for one
// property name. Identified by (form_id, name); soft-deleted on reset.
type StyleOverride struct {
	ID        uuid.UUID `json:"id"`
	FormID    uuid.UUID `json:"form_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
