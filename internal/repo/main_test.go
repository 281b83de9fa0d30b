package repo_test

import (
	"os"
	"testing"

	"github.com/pkordes/travel-agency/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies the travel schema to the test database once for the whole
// binary; each test then works inside its own rolled-back transaction.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		testutil.MustMigrate(dsn)
	}
	// Without a test DB every test in this package skips itself.
	os.Exit(m.Run())
}
