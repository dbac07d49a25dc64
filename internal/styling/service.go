// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package styling

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"formpress/internal/models"
)

// Sentinel errors surfaced by the service. Handlers map them to HTTP
// status codes with errors.Is.
var (
	// ErrFormNotFound is returned when the referenced form does not exist
	// or is soft-deleted. Raised before any mutation.
	ErrFormNotFound = errors.New("form not found")

	// ErrInvalidPayload is returned for an empty override update map.
	// Raised before any mutation.
	ErrInvalidPayload = errors.New("invalid styling payload")
)

// DefaultSource provides read access to a catalog's defaults.
// Implemented by store.StyleDefaultStore.
type DefaultSource interface {
	List(catalog Catalog) ([]models.StyleDefault, error)
	ListEditable(catalog Catalog) ([]models.StyleDefault, error)
}

// OverrideSource provides access to per-form override rows.
// Implemented by store.StyleOverrideStore.
type OverrideSource interface {
	ListByForm(catalog Catalog, formID uuid.UUID) ([]models.StyleOverride, error)
	Upsert(catalog Catalog, formID uuid.UUID, name, value string) error
	DeleteByForm(catalog Catalog, formID uuid.UUID) error
	HasAny(catalog Catalog, formID uuid.UUID) (bool, error)
}

// FormSource resolves form existence. Implemented by store.FormStore.
// FindByID returns nil (no error) when the form is absent or soft-deleted.
type FormSource interface {
	FindByID(id uuid.UUID) (*models.Form, error)
}

// Service orchestrates the resolver, the CSS generator, and the stylesheet
// cache. It is the only entry point the HTTP layer uses for styling.
type Service struct {
	defaults  DefaultSource
	overrides OverrideSource
	forms     FormSource
	cache     Cache

	// group collapses concurrent regeneration of the same cold cache key.
	// Duplicate regeneration would be harmless (generation is pure), this
	// just avoids redundant store reads under request bursts.
	group singleflight.Group
}

// NewService creates a styling service over the given sources and cache.
func NewService(defaults DefaultSource, overrides OverrideSource, forms FormSource, cache Cache) *Service {
	return &Service{
		defaults:  defaults,
		overrides: overrides,
		forms:     forms,
		cache:     cache,
	}
}

// requireForm loads the form or fails with ErrFormNotFound.
func (s *Service) requireForm(formID uuid.UUID) (*models.Form, error) {
	form, err := s.forms.FindByID(formID)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// resolve loads and merges one catalog for one form.
func (s *Service) resolve(catalog Catalog, formID uuid.UUID) (map[string]string, error) {
	defaults, err := s.defaults.List(catalog)
	if err != nil {
		return nil, fmt.Errorf("list %s defaults: %w", catalog, err)
	}
	overrides, err := s.overrides.ListByForm(catalog, formID)
	if err != nil {
		return nil, fmt.Errorf("list %s overrides: %w", catalog, err)
	}
	return Resolve(defaults, overrides), nil
}

// EffectiveStyles returns the resolved name → value map for one form and
// catalog. Not cached: it serves introspection and summary views, not the
// stylesheet hot path.
func (s *Service) EffectiveStyles(formID uuid.UUID, catalog Catalog) (map[string]string, error) {
	if _, err := s.requireForm(formID); err != nil {
		return nil, err
	}
	return s.resolve(catalog, formID)
}

// Stylesheet returns the generated scoped stylesheet for one form and
// catalog, serving from cache when possible. In tokens mode both catalogs
// are resolved and merged by the generator (tokens win per name) so a form
// can migrate off legacy variables incrementally; legacy mode emits only
// the legacy catalog.
func (s *Service) Stylesheet(ctx context.Context, formID uuid.UUID, catalog Catalog) (string, error) {
	form, err := s.requireForm(formID)
	if err != nil {
		return "", err
	}

	if css, ok := s.cache.Get(ctx, catalog, formID); ok {
		return css, nil
	}

	key := string(catalog) + ":" + formID.String()
	v, err, _ := s.group.Do(key, func() (any, error) {
		var tokens map[string]string
		if catalog == CatalogTokens {
			resolved, err := s.resolve(CatalogTokens, formID)
			if err != nil {
				return "", err
			}
			tokens = resolved
		}
		legacy, err := s.resolve(CatalogLegacy, formID)
		if err != nil {
			return "", err
		}

		css := Generate(form.DOMID(), tokens, legacy)
		s.cache.Put(ctx, catalog, formID, css)
		return css, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// UpdateOverrides upserts a batch of override values for one form and
// catalog. Names absent from the catalog are skipped with a warning rather
// than failing the batch: partial success is preferred over rejecting a
// whole styling update because of one stale key. Writes happen
// sequentially; the form's cache entries are invalidated only after every
// write in the call has completed.
func (s *Service) UpdateOverrides(ctx context.Context, formID uuid.UUID, catalog Catalog, updates map[string]string) error {
	if _, err := s.requireForm(formID); err != nil {
		return err
	}
	if len(updates) == 0 {
		return ErrInvalidPayload
	}

	defaults, err := s.defaults.List(catalog)
	if err != nil {
		return fmt.Errorf("list %s defaults: %w", catalog, err)
	}
	known := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		known[d.Name] = true
	}

	// Sorted iteration keeps write and log order deterministic; no two
	// properties have an ordering dependency on each other.
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		if !known[name] {
			slog.Warn("skipping unknown style property",
				"form_id", formID,
				"catalog", catalog,
				"name", name,
			)
			continue
		}
		if err := s.overrides.Upsert(catalog, formID, name, updates[name]); err != nil {
			// Earlier upserts in the batch stay committed; drop the stale
			// cache entries for whatever was written before failing.
			if applied > 0 {
				s.cache.Invalidate(ctx, formID)
			}
			return fmt.Errorf("upsert override %s: %w", name, err)
		}
		applied++
	}

	s.cache.Invalidate(ctx, formID)
	return nil
}

// ResetOverrides soft-deletes every override for the form in one catalog
// and invalidates its cache entries. It does not repopulate defaults; for
// the tokens catalog callers pair it with InitializeOverrides when a full
// reset-to-defaults is wanted.
func (s *Service) ResetOverrides(ctx context.Context, formID uuid.UUID, catalog Catalog) error {
	if _, err := s.requireForm(formID); err != nil {
		return err
	}
	if err := s.overrides.DeleteByForm(catalog, formID); err != nil {
		return fmt.Errorf("delete %s overrides: %w", catalog, err)
	}
	s.cache.Invalidate(ctx, formID)
	return nil
}

// InitializeOverrides materializes one override row per user-editable
// default, each set to the default's value, giving the form an editable
// copy that evolves independently of the shared catalog. Idempotent: if
// the form already has any override row in the catalog this is a no-op.
func (s *Service) InitializeOverrides(ctx context.Context, formID uuid.UUID, catalog Catalog) error {
	if _, err := s.requireForm(formID); err != nil {
		return err
	}

	has, err := s.overrides.HasAny(catalog, formID)
	if err != nil {
		return fmt.Errorf("check %s overrides: %w", catalog, err)
	}
	if has {
		return nil
	}

	editable, err := s.defaults.ListEditable(catalog)
	if err != nil {
		return fmt.Errorf("list editable %s defaults: %w", catalog, err)
	}
	for _, d := range editable {
		if err := s.overrides.Upsert(catalog, formID, d.Name, d.DefaultValue); err != nil {
			return fmt.Errorf("initialize override %s: %w", d.Name, err)
		}
	}

	s.cache.Invalidate(ctx, formID)
	slog.Info("style overrides initialized",
		"form_id", formID,
		"catalog", catalog,
		"count", len(editable),
	)
	return nil
}

// InvalidateForm drops the form's cached stylesheets without touching the
// stores. Used by the form lifecycle when a form is deleted, where the
// existence-checked styling operations no longer apply.
func (s *Service) InvalidateForm(ctx context.Context, formID uuid.UUID) {
	s.cache.Invalidate(ctx, formID)
}

// AvailableDefaults lists the full catalog, non-editable palette constants
// included. Editor UIs must filter by IsUserEditable before offering edits.
func (s *Service) AvailableDefaults(catalog Catalog) ([]models.StyleDefault, error) {
	return s.defaults.List(catalog)
}

// DefaultsByCategory groups the catalog by category label, preserving the
// store's category-then-name ordering inside each group.
func (s *Service) DefaultsByCategory(catalog Catalog) (map[string][]models.StyleDefault, error) {
	defaults, err := s.defaults.List(catalog)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]models.StyleDefault)
	for _, d := range defaults {
		grouped[d.Category] = append(grouped[d.Category], d)
	}
	return grouped, nil
}

// VariableSummary compares one property's effective value to its default.
type VariableSummary struct {
	Name           string               `json:"name"`
	DisplayName    string               `json:"displayName"`
	DataType       models.StyleDataType `json:"dataType"`
	DefaultValue   string               `json:"defaultValue"`
	CurrentValue   string               `json:"currentValue"`
	IsCustomized   bool                 `json:"isCustomized"`
	IsUserEditable bool                 `json:"isUserEditable"`
}

// CategorySummary aggregates one category's customization state.
type CategorySummary struct {
	Total      int               `json:"total"`
	Customized int               `json:"customized"`
	Variables  []VariableSummary `json:"variables"`
}

// Summary reports a form's customization state across a whole catalog.
type Summary struct {
	TotalVariables      int                        `json:"totalVariables"`
	CustomizedVariables int                        `json:"customizedVariables"`
	Categories          map[string]CategorySummary `json:"categories"`
}

// StylingSummary derives the per-category customization report for one
// form and catalog from resolver output. Purely derived, never cached.
func (s *Service) StylingSummary(formID uuid.UUID, catalog Catalog) (*Summary, error) {
	if _, err := s.requireForm(formID); err != nil {
		return nil, err
	}

	defaults, err := s.defaults.List(catalog)
	if err != nil {
		return nil, fmt.Errorf("list %s defaults: %w", catalog, err)
	}
	overrides, err := s.overrides.ListByForm(catalog, formID)
	if err != nil {
		return nil, fmt.Errorf("list %s overrides: %w", catalog, err)
	}
	effective := Resolve(defaults, overrides)

	summary := &Summary{Categories: make(map[string]CategorySummary)}
	for _, d := range defaults {
		current := effective[d.Name]
		customized := current != d.DefaultValue

		cat := summary.Categories[d.Category]
		cat.Total++
		if customized {
			cat.Customized++
		}
		cat.Variables = append(cat.Variables, VariableSummary{
			Name:           d.Name,
			DisplayName:    d.DisplayName,
			DataType:       d.DataType,
			DefaultValue:   d.DefaultValue,
			CurrentValue:   current,
			IsCustomized:   customized,
			IsUserEditable: d.IsUserEditable,
		})
		summary.Categories[d.Category] = cat

		summary.TotalVariables++
		if customized {
			summary.CustomizedVariables++
		}
	}
	return summary, nil
}
