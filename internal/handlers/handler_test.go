// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"formpress/internal/database"
	"formpress/internal/store"
	"formpress/internal/styling"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations, and
// seeds the style catalogs.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "formpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "formpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds the handler dependencies for integration tests, wired the
// same way main does but with an in-process stylesheet cache.
type testEnv struct {
	DB        *sql.DB
	FormStore *store.FormStore
	Service   *styling.Service
	Forms     *Forms
	Styles    *Styles
	Router    *chi.Mux
}

// newTestEnv creates a complete test environment over a real database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	formStore := store.NewFormStore(db)
	defaultStore := store.NewStyleDefaultStore(db)
	overrideStore := store.NewStyleOverrideStore(db)

	service := styling.NewService(defaultStore, overrideStore, formStore,
		styling.NewMemoryCache(styling.DefaultStylesheetTTL))

	forms := NewForms(formStore, service)
	styles := NewStyles(service, 5*time.Minute)

	r := chi.NewRouter()
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", forms.List)
		r.Post("/", forms.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", forms.Get)
			r.Put("/", forms.Update)
			r.Delete("/", forms.Delete)
			r.Post("/publish", forms.Publish)
			r.Get("/css", styles.CSS)
			r.Get("/styles", styles.Get)
			r.Put("/styles", styles.Update)
			r.Post("/styles/reset", styles.Reset)
			r.Get("/styles/summary", styles.Summary)
		})
	})
	r.Get("/styling/variables", styles.Variables)
	r.Get("/styling/tokens", styles.Tokens)

	return &testEnv{
		DB:        db,
		FormStore: formStore,
		Service:   service,
		Forms:     forms,
		Styles:    styles,
		Router:    r,
	}
}

// cleanForms hard-deletes test forms and their overrides by slug prefix.
func cleanForms(t *testing.T, db *sql.DB, slugPrefix string) {
	t.Helper()
	for _, table := range []string{"style_variable_overrides", "style_token_overrides"} {
		db.Exec("DELETE FROM "+table+" WHERE form_id IN (SELECT id FROM forms WHERE slug LIKE $1)", slugPrefix+"%")
	}
	db.Exec("DELETE FROM forms WHERE slug LIKE $1", slugPrefix+"%")
}
