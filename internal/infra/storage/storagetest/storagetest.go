// Package storagetest opens a migrated PostgreSQL database for repository tests.
// Tests are skipped unless STUDIO_TEST_DSN is set.
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioBookingService/internal/migrate"
)

const dsnEnv = "STUDIO_TEST_DSN"

type testLogger struct{ t *testing.T }

func (l testLogger) Info(format string, v ...interface{}) { l.t.Logf(format, v...) }

// Open connects, migrates and truncates every table
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = migrate.Up(ctx, db, testLogger{t: t})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `TRUNCATE bookings, agents, day_blocks, studio_settings RESTART IDENTITY`)
	require.NoError(t, err)

	return db
}
