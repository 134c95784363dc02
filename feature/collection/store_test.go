package collection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestStore creates an initialized store on an in-memory SQLite DB.
func setupTestStore(t *testing.T, dbName string) *Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	store := NewStore(db)
	require.NoError(t, store.Init())
	return store
}

func testGame(id int, name string) *Game {
	g := &Game{
		ID:         id,
		Name:       name,
		Rank:       id * 10,
		GeekRating: float64(id),
		Hash:       fmt.Sprintf("hash-%d-v1", id),
	}
	return g
}

func TestStoreInitIdempotent(t *testing.T) {
	store := setupTestStore(t, "store_init")
	// Re-initializing against existing state must be safe.
	assert.NoError(t, store.Init())
	assert.NoError(t, store.Init())
}

func TestStoreGetGameAbsent(t *testing.T) {
	store := setupTestStore(t, "store_absent")
	game, err := store.GetGame(404)
	assert.NoError(t, err)
	assert.Nil(t, game)
}

func TestStoreUpsert(t *testing.T) {
	store := setupTestStore(t, "store_upsert")

	game := testGame(13, "Catan")
	outcome, err := store.Upsert(game)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	// Same hash: no write, reported unchanged.
	outcome, err = store.Upsert(testGame(13, "Catan"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)

	// Changed hash: updated.
	changed := testGame(13, "Catan (2nd Edition)")
	changed.Hash = "hash-13-v2"
	outcome, err = store.Upsert(changed)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	stored, err := store.GetGame(13)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Catan (2nd Edition)", stored.Name)
	assert.Equal(t, "hash-13-v2", stored.Hash)
}

func TestStoreOwnership(t *testing.T) {
	store := setupTestStore(t, "store_ownership")
	_, err := store.Upsert(testGame(13, "Catan"))
	require.NoError(t, err)

	owned, err := store.OwnershipExists("alice", 13)
	require.NoError(t, err)
	assert.False(t, owned)

	require.NoError(t, store.AddOwnership("alice", 13))
	owned, err = store.OwnershipExists("alice", 13)
	require.NoError(t, err)
	assert.True(t, owned)

	ids, err := store.OwnedGameIDs("alice")
	require.NoError(t, err)
	assert.Equal(t, []int{13}, ids)
}

func TestStorePruneOwnership(t *testing.T) {
	store := setupTestStore(t, "store_prune_own")
	for id, name := range map[int]string{13: "Catan", 822: "Carcassonne", 30549: "Pandemic"} {
		_, err := store.Upsert(testGame(id, name))
		require.NoError(t, err)
		require.NoError(t, store.AddOwnership("alice", id))
	}

	// Alice's current sync only reported Catan and Pandemic.
	seen := map[int]struct{}{13: {}, 30549: {}}
	removed, err := store.PruneOwnership("alice", seen)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "Carcassonne", removed[0].Name)

	owned, err := store.OwnedGameIDs("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{13, 30549}, owned)

	// Nothing stale: no-op.
	removed, err = store.PruneOwnership("alice", seen)
	require.NoError(t, err)
	assert.Empty(t, removed)
}

func TestStorePruneOrphans(t *testing.T) {
	store := setupTestStore(t, "store_prune_orphans")
	_, err := store.Upsert(testGame(13, "Catan"))
	require.NoError(t, err)
	_, err = store.Upsert(testGame(822, "Carcassonne"))
	require.NoError(t, err)
	require.NoError(t, store.AddOwnership("alice", 13))

	orphans, err := store.PruneOrphans()
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, 822, orphans[0].ID)

	game, err := store.GetGame(822)
	require.NoError(t, err)
	assert.Nil(t, game, "orphan row is gone")

	game, err = store.GetGame(13)
	require.NoError(t, err)
	assert.NotNil(t, game, "owned game survives")
}

func TestStoreUsers(t *testing.T) {
	store := setupTestStore(t, "store_users")
	_, err := store.Upsert(testGame(13, "Catan"))
	require.NoError(t, err)

	require.NoError(t, store.AddOwnership("carol", 13))
	require.NoError(t, store.AddOwnership("alice", 13))
	require.NoError(t, store.AddOwnership("bob", 13))

	users, err := store.Users()
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, users, "distinct and sorted")
}
