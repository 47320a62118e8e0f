// Package testing provides testing utilities and helpers for the dashboard project.
package testing

import (
	"fmt"
	"os"
	"testing"

	"github.com/brenofinance/dashboard/internal/database"
	_ "modernc.org/sqlite"
)

// NewTestDB creates a file-backed SQLite database in the temp dir and applies
// the embedded schema matching name. Returns the database and an idempotent
// cleanup function; cleanup is also registered with t.Cleanup.
//
// Supported schema names:
//   - "app" - users, accounts, transactions, investments
//   - "client_data" - cached price quotes
//   - Unknown names - creates empty database (no schema applied)
func NewTestDB(t *testing.T, name string) (*database.DB, func()) {
	t.Helper()

	// Temporary files keep tests isolated from each other and from WAL sidecars
	tmpFile, err := os.CreateTemp("", fmt.Sprintf("test_%s_*.db", name))
	if err != nil {
		t.Fatalf("Failed to create temporary database file: %v", err)
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()

	db, err := database.New(database.Config{
		Path:    tmpPath,
		Profile: database.ProfileStandard,
		Name:    name,
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
		for _, p := range []string{tmpPath, tmpPath + "-wal", tmpPath + "-shm"} {
			_ = os.Remove(p)
		}
	}
	t.Cleanup(cleanup)

	return db, cleanup
}
