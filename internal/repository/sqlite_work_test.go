package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/backplan/internal/domain"
	"github.com/alexanderramin/backplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	deadline := domain.Date(2026, 3, 13)
	w := testutil.NewTestWork("b1", "Tender Gemeente Utrecht", &deadline)
	require.NoError(t, repo.Create(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tender Gemeente Utrecht", fetched.Name)
	require.NotNil(t, fetched.Deadline)
	assert.Equal(t, deadline, *fetched.Deadline)
}

func TestWorkRepo_NoDeadline(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWork("b1", "Open-ended", nil)
	require.NoError(t, repo.Create(ctx, w))

	fetched, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.Deadline)
}

func TestWorkRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
