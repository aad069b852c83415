package testutil

import (
	"testing"

	"gorm.io/gorm"

	"team-attendance/backend/app/db"
	"team-attendance/backend/config"
)

// OpenInMemoryDB opens a named in-memory SQLite database through the regular
// open path (same pragmas as production). Shared cache keeps the database
// alive across the pooled connections gorm opens.
func OpenInMemoryDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(db.Config{Driver: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// TestConfig returns a config suitable for handler tests: generous rate
// limits and a fixed secret.
func TestConfig() *config.Config {
	return &config.Config{
		JWT:       config.JWT{Secret: "test-secret", Issuer: "team-attendance-test", ExpMin: 480},
		RateLimit: config.RateLimit{RPS: 1000, Burst: 1000},
	}
}
