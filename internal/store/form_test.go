package store

import (
	"testing"

	"github.com/google/uuid"

	"formpress/internal/models"
	"formpress/internal/styling"
)

func TestFormStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)

	slug := "test-form-create-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanForms(t, db, slug) })

	desc := "A form for testing"
	form := &models.Form{
		Name:        "Test Form",
		Slug:        slug,
		Description: &desc,
		Schema:      []byte(`{"fields":[{"type":"text","label":"Name"}]}`),
	}

	created, err := s.Create(form)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Name != "Test Form" {
		t.Errorf("name: got %q, want %q", created.Name, "Test Form")
	}
	if created.IsPublished {
		t.Error("new forms must start unpublished")
	}
	if created.Description == nil || *created.Description != desc {
		t.Errorf("description: got %v, want %q", created.Description, desc)
	}

	// FindByID.
	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected form, got nil")
	}
	if found.Slug != slug {
		t.Errorf("slug: got %q, want %q", found.Slug, slug)
	}

	// FindBySlug.
	bySlug, err := s.FindBySlug(slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug == nil || bySlug.ID != created.ID {
		t.Errorf("FindBySlug returned %v, want id %s", bySlug, created.ID)
	}
}

func TestFormStoreCreateEmptySchema(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)

	slug := "test-form-noschema-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanForms(t, db, slug) })

	created, err := s.Create(&models.Form{Name: "No Schema", Slug: slug})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if string(created.Schema) != "{}" {
		t.Errorf("schema: got %q, want empty object", created.Schema)
	}
}

func TestFormStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)

	found, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for a random id, got %+v", found)
	}

	bySlug, err := s.FindBySlug("no-such-slug-" + uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if bySlug != nil {
		t.Errorf("expected nil for a random slug, got %+v", bySlug)
	}
}

func TestFormStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)

	slug := "test-form-update-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanForms(t, db, slug) })
	form := createTestForm(t, db, slug)

	newDesc := "updated description"
	if err := s.Update(form.ID, "Updated Name", &newDesc, []byte(`{"fields":[1]}`)); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, err := s.FindByID(form.ID)
	if err != nil || updated == nil {
		t.Fatalf("FindByID after update: %v", err)
	}
	if updated.Name != "Updated Name" {
		t.Errorf("name: got %q", updated.Name)
	}
	if updated.Description == nil || *updated.Description != newDesc {
		t.Errorf("description: got %v", updated.Description)
	}
	if updated.Slug != slug {
		t.Errorf("slug changed to %q, must stay %q", updated.Slug, slug)
	}

	// Updating a missing form reports an error.
	if err := s.Update(uuid.New(), "x", nil, nil); err == nil {
		t.Error("Update of missing form should fail")
	}
}

func TestFormStorePublish(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)

	slug := "test-form-publish-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanForms(t, db, slug) })
	form := createTestForm(t, db, slug)

	if err := s.Publish(form.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	published, err := s.FindByID(form.ID)
	if err != nil || published == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !published.IsPublished {
		t.Error("form should be published")
	}

	if err := s.Publish(uuid.New()); err == nil {
		t.Error("Publish of missing form should fail")
	}
}

func TestFormStoreSoftDeleteCascades(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)
	overrides := NewStyleOverrideStore(db)

	slug := "test-form-delete-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanForms(t, db, slug) })
	form := createTestForm(t, db, slug)

	// Give the form overrides in both catalogs.
	if err := overrides.Upsert(styling.CatalogTokens, form.ID, "--form-input-height", "2rem"); err != nil {
		t.Fatalf("upsert token override: %v", err)
	}
	if err := overrides.Upsert(styling.CatalogLegacy, form.ID, "--fp-primary-color", "#111111"); err != nil {
		t.Fatalf("upsert legacy override: %v", err)
	}

	if err := s.SoftDelete(form.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	// The form no longer resolves.
	found, err := s.FindByID(form.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("soft-deleted form should not be found")
	}

	// Neither do its overrides, in either catalog.
	for _, catalog := range []styling.Catalog{styling.CatalogTokens, styling.CatalogLegacy} {
		rows, err := overrides.ListByForm(catalog, form.ID)
		if err != nil {
			t.Fatalf("ListByForm %s: %v", catalog, err)
		}
		if len(rows) != 0 {
			t.Errorf("%s overrides after delete = %d, want 0", catalog, len(rows))
		}
	}

	// The row itself survives for retention.
	var exists bool
	if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM forms WHERE id = $1)", form.ID).Scan(&exists); err != nil {
		t.Fatalf("raw exists check: %v", err)
	}
	if !exists {
		t.Error("soft delete must keep the underlying row")
	}

	if err := s.SoftDelete(uuid.New()); err == nil {
		t.Error("SoftDelete of missing form should fail")
	}
}

func TestFormStoreList(t *testing.T) {
	db := testDB(t)
	s := NewFormStore(db)

	slugA := "test-form-list-a-" + uuid.NewString()[:8]
	slugB := "test-form-list-b-" + uuid.NewString()[:8]
	t.Cleanup(func() { cleanForms(t, db, slugA, slugB) })

	createTestForm(t, db, slugA)
	b := createTestForm(t, db, slugB)

	forms, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	index := make(map[string]int, len(forms))
	for i, f := range forms {
		index[f.Slug] = i
	}
	posA, okA := index[slugA]
	posB, okB := index[slugB]
	if !okA || !okB {
		t.Fatalf("list is missing test forms (a=%v b=%v)", okA, okB)
	}
	// Newest first.
	if posB > posA {
		t.Errorf("expected %q (newer) before %q, got positions %d and %d", slugB, slugA, posB, posA)
	}

	// Deleted forms drop out of the listing.
	if err := s.SoftDelete(b.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}
	forms, err = s.List()
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	for _, f := range forms {
		if f.Slug == slugB {
			t.Errorf("deleted form %q still listed", slugB)
		}
	}
}
