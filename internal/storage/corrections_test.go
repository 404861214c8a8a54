package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenserule/internal/logging"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "expenses.db"), &logging.MockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCorrections_GetAbsent(t *testing.T) {
	repo := newTestRepo(t)

	category, found, err := repo.GetCorrection(context.Background(), "uber")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, category)
}

func TestCorrections_UpsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCorrection(ctx, "uber", "Travel"))

	category, found, err := repo.GetCorrection(ctx, "uber")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Travel", category)
}

func TestCorrections_LastWriteWins(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCorrection(ctx, "uber", "Car and Truck Expenses"))
	require.NoError(t, repo.UpsertCorrection(ctx, "uber", "Travel"))

	category, found, err := repo.GetCorrection(ctx, "uber")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Travel", category)

	corrections, err := repo.ListCorrections(ctx)
	require.NoError(t, err)
	assert.Len(t, corrections, 1, "upsert must replace, not accumulate")
}

func TestCorrections_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCorrection(ctx, "adobe", "Office Expense"))
	require.NoError(t, repo.UpsertCorrection(ctx, "adobe", "Office Expense"))

	corrections, err := repo.ListCorrections(ctx)
	require.NoError(t, err)
	require.Len(t, corrections, 1)
	assert.Equal(t, "adobe", corrections[0].MerchantKey)
	assert.Equal(t, "Office Expense", corrections[0].Category)
}

func TestCorrections_PersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "expenses.db")
	ctx := context.Background()

	repo, err := New(dbPath, &logging.MockLogger{})
	require.NoError(t, err)
	require.NoError(t, repo.UpsertCorrection(ctx, "uber", "Travel"))
	require.NoError(t, repo.Close())

	reopened, err := New(dbPath, &logging.MockLogger{})
	require.NoError(t, err)
	defer reopened.Close()

	category, found, err := reopened.GetCorrection(ctx, "uber")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Travel", category)
}

func TestCorrections_ListOrdered(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCorrection(ctx, "zoom", "Office Expense"))
	require.NoError(t, repo.UpsertCorrection(ctx, "adobe", "Office Expense"))
	require.NoError(t, repo.UpsertCorrection(ctx, "uber", "Travel"))

	corrections, err := repo.ListCorrections(ctx)
	require.NoError(t, err)
	require.Len(t, corrections, 3)
	assert.Equal(t, "adobe", corrections[0].MerchantKey)
	assert.Equal(t, "uber", corrections[1].MerchantKey)
	assert.Equal(t, "zoom", corrections[2].MerchantKey)
	for _, c := range corrections {
		assert.False(t, c.UpdatedAt.IsZero())
	}
}

func TestCorrections_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertCorrection(ctx, "uber", "Travel"))
	require.NoError(t, repo.DeleteCorrection(ctx, "uber"))

	_, found, err := repo.GetCorrection(ctx, "uber")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key stays quiet.
	assert.NoError(t, repo.DeleteCorrection(ctx, "uber"))
}
