package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mwesthall/catalogctl/internal/db"
	"github.com/mwesthall/catalogctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSnapshotRepo(t *testing.T) *SQLiteSnapshotRepo {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewSQLiteSnapshotRepo(database)
}

func TestSnapshotRepo_SaveAndGet(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()

	forest := []*domain.SubDomain{
		{ID: "a", Title: "ML", Children: []*domain.SubDomain{{ID: "b", Title: "Deep"}}},
	}
	fetched := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &ForestSnapshot{
		DomainID:    "5",
		DomainTitle: "Computer Science",
		Forest:      forest,
		FetchedAt:   fetched,
	}))

	snap, err := repo.Get(ctx, "5")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Computer Science", snap.DomainTitle)
	assert.Equal(t, fetched, snap.FetchedAt)
	require.Len(t, snap.Forest, 1)
	require.Len(t, snap.Forest[0].Children, 1)
	assert.Equal(t, "b", snap.Forest[0].Children[0].ID)
}

func TestSnapshotRepo_SaveOverwrites(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &ForestSnapshot{
		DomainID: "5", DomainTitle: "Old", FetchedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.Save(ctx, &ForestSnapshot{
		DomainID: "5", DomainTitle: "New",
		Forest:    []*domain.SubDomain{{ID: "x", Title: "Fresh"}},
		FetchedAt: time.Now().UTC(),
	}))

	snap, err := repo.Get(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "New", snap.DomainTitle)
	assert.Len(t, snap.Forest, 1)
}

func TestSnapshotRepo_GetMissing(t *testing.T) {
	repo := setupSnapshotRepo(t)

	snap, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotRepo_Delete(t *testing.T) {
	repo := setupSnapshotRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &ForestSnapshot{DomainID: "5", FetchedAt: time.Now().UTC()}))
	require.NoError(t, repo.Delete(ctx, "5"))

	snap, err := repo.Get(ctx, "5")
	require.NoError(t, err)
	assert.Nil(t, snap)

	// Deleting again is not an error.
	require.NoError(t, repo.Delete(ctx, "5"))
}
