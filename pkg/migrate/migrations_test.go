package migrate_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framehouse-studio/booking-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("ValidateDir: %v", err)
	}
}

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	embedded, err := fs.Glob(migrate.Embedded, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob embedded: %v", err)
	}
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob disk: %v", err)
	}
	if len(embedded) == 0 || len(embedded) != len(onDisk) {
		t.Fatalf("embedded=%d on disk=%d", len(embedded), len(onDisk))
	}
}

func TestBookingMigrationsCarryConstraints(t *testing.T) {
	checks := map[string][]string{
		"*_create_wedding_quotes.sql": {
			"CREATE TABLE IF NOT EXISTS wedding_quotes",
			"CHECK ((venue_id IS NULL) <> (venue_name IS NULL))",
			"payment_status text CHECK (payment_status IN ('deposit_paid', 'paid', 'failed', 'canceled'))",
			"DROP TABLE IF EXISTS wedding_quotes",
		},
		"*_create_wedding_events.sql": {
			"CONSTRAINT ux_wedding_events_quote_id UNIQUE (quote_id)",
			"DROP TABLE IF EXISTS wedding_events",
		},
	}
	for pattern, subs := range checks {
		matches, err := filepath.Glob(filepath.Join("migrations", pattern))
		if err != nil || len(matches) != 1 {
			t.Fatalf("expected one migration for %s, got %v (%v)", pattern, matches, err)
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			t.Fatalf("read %s: %v", matches[0], err)
		}
		for _, sub := range subs {
			if !strings.Contains(string(data), sub) {
				t.Errorf("%s missing %q", matches[0], sub)
			}
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Venue Photos!")
	if err != nil {
		t.Fatalf("CreateSQLMigration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_venue_photos.sql") {
		t.Fatalf("unexpected path %q", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("generated migration invalid: %v", err)
	}
}
