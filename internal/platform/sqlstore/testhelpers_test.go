package sqlstore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/phrazzld/threat-ingest/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a migrated SQLite database in a temporary directory.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "threats.db") +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlstore.Migrate(context.Background(), db, sqlstore.DriverSQLite, nil))
	return db
}
