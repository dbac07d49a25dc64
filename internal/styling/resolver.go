// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import (
	"log/slog"

	"formpress/internal/models"
)

// Resolve merges a catalog's defaults with one form's overrides into the
// effective name → value mapping. Every default's name appears in the
// result; overrides strictly take precedence. An override whose name has
// no matching default is a data-integrity violation. It is logged and
// dropped, never emitted, since the engine only serves properties with an
// approved catalog entry.
//
// Pure merge, no I/O.
func Resolve(defaults []models.StyleDefault, overrides []models.StyleOverride) map[string]string {
	resolved := make(map[string]string, len(defaults))
	for _, d := range defaults {
		resolved[d.Name] = d.DefaultValue
	}

	for _, o := range overrides {
		if _, known := resolved[o.Name]; !known {
			slog.Warn("style override has no catalog entry, dropping",
				"form_id", o.FormID,
				"name", o.Name,
			)
			continue
		}
		resolved[o.Name] = o.Value
	}

	return resolved
}
