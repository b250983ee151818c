package database

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenAppliesMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, discardLogger())
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&n))
	assert.Equal(t, 2, n)

	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trips").Scan(&n))
	assert.Equal(t, 0, n)

	// Running again is a no-op
	require.NoError(t, NewMigrationManager(db, discardLogger()).RunMigrations(ctx))
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations").Scan(&n))
	assert.Equal(t, 2, n)
}

func TestOpenIsolatesInMemoryDatabases(t *testing.T) {
	ctx := context.Background()
	a, err := Open(ctx, discardLogger())
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(ctx, discardLogger())
	require.NoError(t, err)
	defer b.Close()

	_, err = a.ExecContext(ctx, `INSERT INTO trips (id, start_time, start_station, end_station, month, day_of_week, hour)
		VALUES (1, '2017-01-01 00:00:00', 'A', 'B', 1, 'sunday', 0)`)
	require.NoError(t, err)

	var n int
	require.NoError(t, b.QueryRowContext(ctx, "SELECT COUNT(*) FROM trips").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestLoadMigrationsSorted(t *testing.T) {
	m := NewMigrationManager(nil, discardLogger())
	migrations, err := m.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "001_create_trips", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, discardLogger())
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	err = Transaction(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO trips (id, start_time, start_station, end_station, month, day_of_week, hour)
			VALUES (1, '2017-01-01 00:00:00', 'A', 'B', 1, 'sunday', 0)`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trips").Scan(&n))
	assert.Equal(t, 0, n)
}
