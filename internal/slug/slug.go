// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for form share links.
package slug

import (
	"regexp"
	"strings"
)

// maxLen caps slug length so generated share URLs stay manageable even
// for very long form names. Truncation never leaves a trailing hyphen.
const maxLen = 80

var (
	// nonSlugChars matches anything that cannot appear in a slug and is
	// not whitespace. Whitespace is handled separately as a separator.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	// hyphenRuns matches runs of two or more hyphens.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Generate derives a lowercase, hyphen-separated slug from a form name.
// Example: "Customer Survey 2026!" becomes "customer-survey-2026".
// Generate is idempotent: feeding a slug back in returns it unchanged.
func Generate(name string) string {
	cleaned := nonSlugChars.ReplaceAllString(strings.ToLower(name), "")

	// Fields splits on any whitespace run, so interior tabs and repeated
	// spaces collapse to a single separator.
	s := strings.Join(strings.Fields(cleaned), "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	return s
}
