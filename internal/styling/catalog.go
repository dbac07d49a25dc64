// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package styling implements the per-form CSS styling engine: it resolves
// global defaults and per-form overrides into effective style maps,
// generates form-scoped stylesheets from them, and caches the generated
// CSS until the form's overrides change.
package styling

import "fmt"

// Catalog selects one of the two independent styling generations. The
// legacy "variables" catalog and the newer "tokens" catalog have their own
// default and override tables and are resolved independently; a mode
// parameter at request time picks which one a stylesheet is built from.
type Catalog string

const (
	CatalogLegacy Catalog = "legacy"
	CatalogTokens Catalog = "tokens"
)

// ParseCatalog converts a request-supplied mode string into a Catalog.
// An empty string defaults to tokens (the current generation).
func ParseCatalog(s string) (Catalog, error) {
	switch s {
	case "", string(CatalogTokens):
		return CatalogTokens, nil
	case string(CatalogLegacy):
		return CatalogLegacy, nil
	default:
		return "", fmt.Errorf("unknown styling catalog %q", s)
	}
}
