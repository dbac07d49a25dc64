package styling

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"formpress/internal/models"
)

// --------------------------------------------------------------------------
// In-memory fakes for the service's source interfaces
// --------------------------------------------------------------------------

type fakeDefaults struct {
	byCatalog map[Catalog][]models.StyleDefault
}

func (f *fakeDefaults) List(catalog Catalog) ([]models.StyleDefault, error) {
	return f.byCatalog[catalog], nil
}

func (f *fakeDefaults) ListEditable(catalog Catalog) ([]models.StyleDefault, error) {
	var editable []models.StyleDefault
	for _, d := range f.byCatalog[catalog] {
		if d.IsUserEditable {
			editable = append(editable, d)
		}
	}
	return editable, nil
}

type fakeOverrides struct {
	rows map[Catalog]map[uuid.UUID]map[string]string
}

func newFakeOverrides() *fakeOverrides {
	return &fakeOverrides{rows: map[Catalog]map[uuid.UUID]map[string]string{
		CatalogLegacy: {},
		CatalogTokens: {},
	}}
}

func (f *fakeOverrides) ListByForm(catalog Catalog, formID uuid.UUID) ([]models.StyleOverride, error) {
	var out []models.StyleOverride
	for name, value := range f.rows[catalog][formID] {
		out = append(out, models.StyleOverride{FormID: formID, Name: name, Value: value})
	}
	return out, nil
}

func (f *fakeOverrides) Upsert(catalog Catalog, formID uuid.UUID, name, value string) error {
	if f.rows[catalog][formID] == nil {
		f.rows[catalog][formID] = make(map[string]string)
	}
	f.rows[catalog][formID][name] = value
	return nil
}

func (f *fakeOverrides) DeleteByForm(catalog Catalog, formID uuid.UUID) error {
	delete(f.rows[catalog], formID)
	return nil
}

func (f *fakeOverrides) HasAny(catalog Catalog, formID uuid.UUID) (bool, error) {
	return len(f.rows[catalog][formID]) > 0, nil
}

type fakeForms struct {
	forms map[uuid.UUID]*models.Form
}

func (f *fakeForms) FindByID(id uuid.UUID) (*models.Form, error) {
	return f.forms[id], nil
}

// newTestService builds a service over fakes with one form and a small
// tokens catalog (one palette constant included) plus a legacy catalog.
func newTestService(t *testing.T) (*Service, uuid.UUID) {
	t.Helper()

	formID := uuid.New()
	defaults := &fakeDefaults{byCatalog: map[Catalog][]models.StyleDefault{
		CatalogTokens: {
			{Name: "--form-input-height", DefaultValue: "3rem", Category: "inputs", IsUserEditable: true},
			{Name: "--form-label-color", DefaultValue: "#374151", Category: "labels", IsUserEditable: true},
			{Name: "--form-palette-primary-500", DefaultValue: "#2563eb", Category: "palette", IsUserEditable: false},
		},
		CatalogLegacy: {
			{Name: "--fp-primary-color", DefaultValue: "#2563eb", Category: "general", IsUserEditable: true},
		},
	}}
	forms := &fakeForms{forms: map[uuid.UUID]*models.Form{
		formID: {ID: formID, Name: "Contact", Slug: "contact"},
	}}

	svc := NewService(defaults, newFakeOverrides(), forms, NewMemoryCache(time.Minute))
	return svc, formID
}

// --------------------------------------------------------------------------
// Validation
// --------------------------------------------------------------------------

func TestServiceFormNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	missing := uuid.New()

	if _, err := svc.EffectiveStyles(missing, CatalogTokens); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("EffectiveStyles: got %v, want ErrFormNotFound", err)
	}
	if _, err := svc.Stylesheet(ctx, missing, CatalogTokens); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("Stylesheet: got %v, want ErrFormNotFound", err)
	}
	if err := svc.UpdateOverrides(ctx, missing, CatalogTokens, map[string]string{"a": "b"}); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("UpdateOverrides: got %v, want ErrFormNotFound", err)
	}
	if err := svc.ResetOverrides(ctx, missing, CatalogTokens); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("ResetOverrides: got %v, want ErrFormNotFound", err)
	}
	if err := svc.InitializeOverrides(ctx, missing, CatalogTokens); !errors.Is(err, ErrFormNotFound) {
		t.Errorf("InitializeOverrides: got %v, want ErrFormNotFound", err)
	}
}

func TestServiceEmptyUpdateRejected(t *testing.T) {
	svc, formID := newTestService(t)

	err := svc.UpdateOverrides(context.Background(), formID, CatalogTokens, map[string]string{})
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("got %v, want ErrInvalidPayload", err)
	}
	err = svc.UpdateOverrides(context.Background(), formID, CatalogTokens, nil)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("nil updates: got %v, want ErrInvalidPayload", err)
	}
}

// --------------------------------------------------------------------------
// Update, skip-and-warn, reset
// --------------------------------------------------------------------------

func TestServiceUpdateAndEffectiveStyles(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	err := svc.UpdateOverrides(ctx, formID, CatalogTokens, map[string]string{
		"--form-input-height": "2.5rem",
	})
	if err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	effective, err := svc.EffectiveStyles(formID, CatalogTokens)
	if err != nil {
		t.Fatalf("EffectiveStyles: %v", err)
	}
	if got := effective["--form-input-height"]; got != "2.5rem" {
		t.Errorf("overridden value = %q, want 2.5rem", got)
	}
	if got := effective["--form-label-color"]; got != "#374151" {
		t.Errorf("untouched default = %q, want #374151", got)
	}
}

func TestServiceUnknownNamesSkipped(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	// One stale key must not fail the batch.
	err := svc.UpdateOverrides(ctx, formID, CatalogTokens, map[string]string{
		"--form-input-height": "2rem",
		"--form-removed-prop": "1rem",
	})
	if err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	effective, _ := svc.EffectiveStyles(formID, CatalogTokens)
	if got := effective["--form-input-height"]; got != "2rem" {
		t.Errorf("valid entry not applied, got %q", got)
	}
	if _, ok := effective["--form-removed-prop"]; ok {
		t.Error("unknown name must not be stored or resolved")
	}
}

func TestServiceResetRestoresDefaults(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	if err := svc.UpdateOverrides(ctx, formID, CatalogTokens, map[string]string{
		"--form-input-height": "2.5rem",
	}); err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	if err := svc.ResetOverrides(ctx, formID, CatalogTokens); err != nil {
		t.Fatalf("ResetOverrides: %v", err)
	}

	effective, _ := svc.EffectiveStyles(formID, CatalogTokens)
	if got := effective["--form-input-height"]; got != "3rem" {
		t.Errorf("after reset = %q, want default 3rem", got)
	}

	css, err := svc.Stylesheet(ctx, formID, CatalogTokens)
	if err != nil {
		t.Fatalf("Stylesheet: %v", err)
	}
	if strings.Contains(css, "2.5rem") {
		t.Error("cache still serves the pre-reset stylesheet")
	}
}

// --------------------------------------------------------------------------
// Cache behavior
// --------------------------------------------------------------------------

func TestServiceStylesheetCacheInvalidatedOnWrite(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	before, err := svc.Stylesheet(ctx, formID, CatalogTokens)
	if err != nil {
		t.Fatalf("Stylesheet: %v", err)
	}
	if !strings.Contains(before, "--form-input-height: 3rem;") {
		t.Fatalf("expected default in stylesheet, got:\n%s", before)
	}

	// A second read must come from cache and be byte-identical.
	cached, _ := svc.Stylesheet(ctx, formID, CatalogTokens)
	if cached != before {
		t.Error("cached stylesheet differs from generated one")
	}

	if err := svc.UpdateOverrides(ctx, formID, CatalogTokens, map[string]string{
		"--form-input-height": "2.5rem",
	}); err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	after, err := svc.Stylesheet(ctx, formID, CatalogTokens)
	if err != nil {
		t.Fatalf("Stylesheet after update: %v", err)
	}
	if !strings.Contains(after, "--form-input-height: 2.5rem;") {
		t.Error("stylesheet does not reflect the override after invalidation")
	}
	if after == before {
		t.Error("update must not serve the pre-update cached stylesheet")
	}
}

func TestServiceLegacyModeOmitsTokens(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	css, err := svc.Stylesheet(ctx, formID, CatalogLegacy)
	if err != nil {
		t.Fatalf("Stylesheet: %v", err)
	}
	if !strings.Contains(css, `--fp-primary-color: "#2563eb";`) {
		t.Error("legacy mode must emit legacy variables")
	}
	if strings.Contains(css, "--form-input-height: 3rem;") {
		t.Error("legacy mode must not emit token declarations")
	}
}

// --------------------------------------------------------------------------
// Initialization
// --------------------------------------------------------------------------

func TestServiceInitializeIdempotent(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	if err := svc.InitializeOverrides(ctx, formID, CatalogTokens); err != nil {
		t.Fatalf("InitializeOverrides: %v", err)
	}

	overrides := svc.overrides.(*fakeOverrides).rows[CatalogTokens][formID]
	if len(overrides) != 2 {
		t.Fatalf("initialized %d overrides, want 2 editable defaults", len(overrides))
	}
	if _, ok := overrides["--form-palette-primary-500"]; ok {
		t.Error("non-editable palette constant must not be materialized")
	}
	if got := overrides["--form-input-height"]; got != "3rem" {
		t.Errorf("initialized value = %q, want the default", got)
	}

	// Customize, then initialize again: the second call must not clobber.
	if err := svc.UpdateOverrides(ctx, formID, CatalogTokens, map[string]string{
		"--form-input-height": "2rem",
	}); err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}
	if err := svc.InitializeOverrides(ctx, formID, CatalogTokens); err != nil {
		t.Fatalf("second InitializeOverrides: %v", err)
	}

	overrides = svc.overrides.(*fakeOverrides).rows[CatalogTokens][formID]
	if got := overrides["--form-input-height"]; got != "2rem" {
		t.Errorf("re-initialization clobbered a customized value, got %q", got)
	}
}

// --------------------------------------------------------------------------
// Summary and introspection
// --------------------------------------------------------------------------

func TestServiceStylingSummary(t *testing.T) {
	svc, formID := newTestService(t)
	ctx := context.Background()

	if err := svc.UpdateOverrides(ctx, formID, CatalogTokens, map[string]string{
		"--form-input-height": "2.5rem",
	}); err != nil {
		t.Fatalf("UpdateOverrides: %v", err)
	}

	summary, err := svc.StylingSummary(formID, CatalogTokens)
	if err != nil {
		t.Fatalf("StylingSummary: %v", err)
	}

	if summary.TotalVariables != 3 {
		t.Errorf("TotalVariables = %d, want 3", summary.TotalVariables)
	}
	if summary.CustomizedVariables != 1 {
		t.Errorf("CustomizedVariables = %d, want 1", summary.CustomizedVariables)
	}

	inputs := summary.Categories["inputs"]
	if inputs.Total != 1 || inputs.Customized != 1 {
		t.Errorf("inputs category = %+v, want total 1 customized 1", inputs)
	}
	if len(inputs.Variables) != 1 {
		t.Fatalf("inputs category has %d variables, want 1", len(inputs.Variables))
	}
	v := inputs.Variables[0]
	if !v.IsCustomized || v.CurrentValue != "2.5rem" || v.DefaultValue != "3rem" {
		t.Errorf("variable summary = %+v", v)
	}

	labels := summary.Categories["labels"]
	if labels.Customized != 0 {
		t.Errorf("labels category customized = %d, want 0", labels.Customized)
	}
}

func TestServiceDefaultsByCategory(t *testing.T) {
	svc, _ := newTestService(t)

	grouped, err := svc.DefaultsByCategory(CatalogTokens)
	if err != nil {
		t.Fatalf("DefaultsByCategory: %v", err)
	}
	if len(grouped) != 3 {
		t.Errorf("got %d categories, want 3", len(grouped))
	}
	// Non-editable entries are included for display.
	if len(grouped["palette"]) != 1 {
		t.Error("palette constants must appear in catalog introspection")
	}
}
