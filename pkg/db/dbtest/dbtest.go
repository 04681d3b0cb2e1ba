// Package dbtest opens throwaway SQLite databases carrying the booking schema
// for repository and service tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE wedding_packages (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL,
  duration_hours INTEGER NOT NULL,
  features TEXT NOT NULL DEFAULT '{}',
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE wedding_addons (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL,
  category TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE venues (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  zip_code TEXT NOT NULL,
  capacity INTEGER,
  phone TEXT,
  website TEXT,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE wedding_quotes (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  package_id TEXT NOT NULL,
  package_name TEXT NOT NULL,
  package_price_cents INTEGER NOT NULL,
  event_date DATE NOT NULL,
  event_time TEXT NOT NULL,
  venue_id TEXT,
  venue_name TEXT,
  guest_count INTEGER,
  special_requests TEXT,
  total_price_cents INTEGER NOT NULL,
  status TEXT NOT NULL,
  payment_status TEXT,
  payment_intent_id TEXT,
  admin_notes TEXT,
  paid_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME,
  CHECK ((venue_id IS NULL) <> (venue_name IS NULL))
);`,
	`CREATE TABLE quote_addons (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL REFERENCES wedding_quotes(id),
  addon_id TEXT NOT NULL,
  addon_name TEXT NOT NULL,
  price_at_selection_cents INTEGER NOT NULL,
  position INTEGER NOT NULL,
  created_at DATETIME
);`,
	`CREATE TABLE wedding_events (
  id TEXT PRIMARY KEY,
  quote_id TEXT NOT NULL UNIQUE,
  user_id TEXT NOT NULL,
  package_id TEXT NOT NULL,
  venue_id TEXT,
  venue_name TEXT,
  event_date DATE NOT NULL,
  event_time TEXT NOT NULL,
  guest_count INTEGER,
  special_requests TEXT,
  total_price_cents INTEGER NOT NULL,
  status TEXT NOT NULL,
  payment_intent_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	`CREATE TABLE outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`,
}

// Open returns a private in-memory database with every booking table created.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory database alive and
	// serializes transactions the way row locks would on Postgres.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}
