// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"

	_ "github.com/jackc/pgx/v5/stdlib"

	"formpress/internal/database"
	"formpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Environment variables override the local-development defaults.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "formpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "formpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database, runs migrations, and
// seeds the style catalogs. If the database is unavailable, the test is
// skipped. A cleanup function closes the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// The default stores read the seeded catalogs.
	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("failed to seed style catalogs: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanForms hard-deletes test forms and their overrides by slug.
// Call in t.Cleanup().
func cleanForms(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		for _, table := range []string{"style_variable_overrides", "style_token_overrides"} {
			db.Exec("DELETE FROM "+table+" WHERE form_id IN (SELECT id FROM forms WHERE slug = $1)", slug)
		}
		db.Exec("DELETE FROM forms WHERE slug = $1", slug)
	}
}

// createTestForm inserts a form through the store for override tests.
func createTestForm(t *testing.T, db *sql.DB, slug string) *models.Form {
	t.Helper()

	s := NewFormStore(db)
	created, err := s.Create(&models.Form{
		Name:   "Store Test Form",
		Slug:   slug,
		Schema: []byte(`{"fields":[]}`),
	})
	if err != nil {
		t.Fatalf("create test form: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created form has no id")
	}
	return created
}
