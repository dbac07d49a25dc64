// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// generator.go turns resolved style maps into a complete, form-scoped
// stylesheet. Every selector is prefixed with the form's DOM id so any
// number of forms can be rendered on one page without style collisions.
package styling

import (
	"regexp"
	"sort"
	"strings"
)

// structuralProp is one CSS declaration in the structural rule library.
// The emitted value is var(<token>, <fallback>) so the stylesheet stays
// self-sufficient even when a token is missing from the resolved map.
// The fallback literals mirror the seeded token defaults.
type structuralProp struct {
	property string
	token    string
	fallback string
}

// literalProp is a fixed declaration with no token indirection.
type literalProp struct {
	property string
	value    string
}

// structuralRule is one rule block of the fixed library. Each selector
// suffix is appended to the form's id selector; multiple suffixes produce
// a comma-separated selector list, every part individually scoped.
type structuralRule struct {
	selectors []string
	props     []structuralProp
	literals  []literalProp
}

// structuralRules is the fixed library of rules emitted after the
// custom-property blocks. Order matters: later rules win on equal
// specificity (e.g. focus after base input appearance).
var structuralRules = []structuralRule{
	{
		// Container sizing, padding, background.
		selectors: []string{""},
		props: []structuralProp{
			{"max-width", "--form-max-width", "640px"},
			{"padding", "--form-padding", "2rem"},
			{"background-color", "--form-background-color", "#ffffff"},
			{"border-radius", "--form-border-radius", "0.5rem"},
			{"box-shadow", "--form-shadow", "0 1px 3px rgba(0, 0, 0, 0.1)"},
		},
		literals: []literalProp{
			{"margin", "0 auto"},
		},
	},
	{
		// Vertical rhythm between fields.
		selectors: []string{" .form-field"},
		props: []structuralProp{
			{"margin-bottom", "--form-field-spacing", "1.5rem"},
		},
	},
	{
		// Label typography.
		selectors: []string{" label"},
		props: []structuralProp{
			{"margin-bottom", "--form-label-spacing", "0.5rem"},
			{"font-size", "--form-label-font-size", "0.875rem"},
			{"font-weight", "--form-label-font-weight", "500"},
			{"color", "--form-label-color", "#374151"},
		},
		literals: []literalProp{
			{"display", "block"},
		},
	},
	{
		// Input appearance.
		selectors: []string{" input", " textarea", " select"},
		props: []structuralProp{
			{"height", "--form-input-height", "3rem"},
			{"padding", "--form-input-padding", "0.75rem"},
			{"font-size", "--form-input-font-size", "1rem"},
			{"color", "--form-input-text-color", "#111827"},
			{"background-color", "--form-input-background", "#ffffff"},
			{"border", "--form-input-border", "1px solid #d1d5db"},
			{"border-radius", "--form-input-border-radius", "0.375rem"},
		},
		literals: []literalProp{
			{"width", "100%"},
			{"box-sizing", "border-box"},
		},
	},
	{
		// Multi-line inputs grow past the single-line height.
		selectors: []string{" textarea"},
		props: []structuralProp{
			{"min-height", "--form-textarea-min-height", "6rem"},
		},
		literals: []literalProp{
			{"height", "auto"},
		},
	},
	{
		// Focus state.
		selectors: []string{" input:focus", " textarea:focus", " select:focus"},
		props: []structuralProp{
			{"border-color", "--form-input-focus-border-color", "#2563eb"},
			{"box-shadow", "--form-input-focus-shadow", "0 0 0 3px rgba(37, 99, 235, 0.2)"},
		},
		literals: []literalProp{
			{"outline", "none"},
		},
	},
	{
		// Error state.
		selectors: []string{
			" .form-field.has-error input",
			" .form-field.has-error textarea",
			" .form-field.has-error select",
		},
		props: []structuralProp{
			{"border-color", "--form-error-color", "#dc2626"},
		},
	},
	{
		// Inline validation message.
		selectors: []string{" .form-error-message"},
		props: []structuralProp{
			{"color", "--form-error-color", "#dc2626"},
			{"font-size", "--form-error-font-size", "0.75rem"},
		},
		literals: []literalProp{
			{"margin-top", "0.25rem"},
		},
	},
	{
		// Primary submit button.
		selectors: []string{` button[type="submit"]`, " .form-submit-button"},
		props: []structuralProp{
			{"height", "--form-button-height", "3rem"},
			{"padding", "--form-button-padding", "0 1.5rem"},
			{"font-size", "--form-button-font-size", "1rem"},
			{"font-weight", "--form-button-font-weight", "600"},
			{"color", "--form-button-text-color", "#ffffff"},
			{"background-color", "--form-button-background", "#2563eb"},
			{"border-radius", "--form-button-border-radius", "0.375rem"},
		},
		literals: []literalProp{
			{"border", "none"},
			{"cursor", "pointer"},
		},
	},
	{
		// Button hover.
		selectors: []string{` button[type="submit"]:hover`, " .form-submit-button:hover"},
		props: []structuralProp{
			{"background-color", "--form-button-hover-background", "#1d4ed8"},
		},
	},
}

// bareHexColor matches an unquoted 3- or 6-digit hex color literal.
var bareHexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// formatValue normalizes a value for emission. Bare hex colors stored for
// color-ish property names are wrapped in quotes; values stored with
// quoting already, or in any other notation (rgba, keywords, sizes), pass
// through unchanged.
func formatValue(name, value string) string {
	if !strings.Contains(name, "color") &&
		!strings.Contains(name, "background") &&
		!strings.Contains(name, "border") {
		return value
	}
	if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, `'`) {
		return value
	}
	if bareHexColor.MatchString(value) {
		return `"` + value + `"`
	}
	return value
}

// Generate builds the complete scoped stylesheet for one form. domID is
// used verbatim as the id selector (see models.Form.DOMID). tokens and
// legacy are the resolved maps for the two catalogs; they are merged for
// the custom-property blocks with tokens winning on equal names, so a form
// can migrate between generations incrementally. Either map may be nil.
//
// The output is deterministic: for fixed inputs the returned string is
// byte-identical across calls, which the cache and exact-text tests rely on.
func Generate(domID string, tokens, legacy map[string]string) string {
	merged := make(map[string]string, len(tokens)+len(legacy))
	for name, value := range legacy {
		merged[name] = value
	}
	for name, value := range tokens {
		merged[name] = value
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("/* Generated styles for form #" + domID + " */\n\n")

	// Custom-property declarations, scoped to the bare id and to the
	// id+container class. The second block keeps the variables available
	// when the container class is matched more specifically than the id.
	writePropertyBlock(&b, "#"+domID, names, merged)
	b.WriteString("\n")
	writePropertyBlock(&b, "#"+domID+".form-content-container", names, merged)

	for _, rule := range structuralRules {
		b.WriteString("\n")
		writeStructuralRule(&b, domID, rule)
	}

	return b.String()
}

// writePropertyBlock emits one rule block declaring every resolved
// property as a CSS custom property.
func writePropertyBlock(b *strings.Builder, selector string, names []string, values map[string]string) {
	b.WriteString(selector + " {\n")
	for _, name := range names {
		b.WriteString("  " + name + ": " + formatValue(name, values[name]) + ";\n")
	}
	b.WriteString("}\n")
}

// writeStructuralRule emits one block of the fixed rule library, scoping
// every selector part under the form's id.
func writeStructuralRule(b *strings.Builder, domID string, rule structuralRule) {
	for i, suffix := range rule.selectors {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("#" + domID + suffix)
	}
	b.WriteString(" {\n")
	for _, p := range rule.literals {
		b.WriteString("  " + p.property + ": " + p.value + ";\n")
	}
	for _, p := range rule.props {
		b.WriteString("  " + p.property + ": var(" + p.token + ", " + formatValue(p.token, p.fallback) + ");\n")
	}
	b.WriteString("}\n")
}

// StructuralFallbacks returns the token → fallback literal table used by
// the structural rule library. The deployment seed mirrors these values so
// a fresh install's defaults and the generated fallbacks agree.
func StructuralFallbacks() map[string]string {
	out := make(map[string]string)
	for _, rule := range structuralRules {
		for _, p := range rule.props {
			out[p.token] = p.fallback
		}
	}
	return out
}
