package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/backplan/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertHoliday(ctx context.Context, tx db.DBTX, date, name string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO bureau_holidays (bureau_id, date, name) VALUES ('b1', ?, ?)`, date, name)
	return err
}

func holidayName(t *testing.T, database *sql.DB, date string) (string, bool) {
	t.Helper()
	var name string
	err := database.QueryRow(`SELECT name FROM bureau_holidays WHERE bureau_id = 'b1' AND date = ?`, date).Scan(&name)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return name, true
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertHoliday(ctx, tx, "2026-04-27", "Koningsdag")
	})
	require.NoError(t, err)

	name, found := holidayName(t, database, "2026-04-27")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Koningsdag", name)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHoliday(ctx, tx, "2026-05-05", "Bevrijdingsdag"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	_, found := holidayName(t, database, "2026-05-05")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnConstraintViolation(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertHoliday(ctx, tx, "2026-12-25", "Kerst"); err != nil {
			return err
		}
		return insertHoliday(ctx, tx, "2026-12-25", "Kerst")
	})
	require.Error(t, err)

	_, found := holidayName(t, database, "2026-12-25")
	assert.False(t, found, "first insert should be rolled back with the second")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertHoliday(ctx, tx, "2026-01-01", "Nieuwjaarsdag")
			panic("boom")
		})
	})

	_, found := holidayName(t, database, "2026-01-01")
	assert.False(t, found, "row should not exist after panic rollback")
}
