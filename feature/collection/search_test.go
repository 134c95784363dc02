package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSearchStore loads a small library covering every predicate. Each
// test gets its own shared-cache DB, keyed by test name.
func seedSearchStore(t *testing.T) *Store {
	store := setupTestStore(t, t.Name())
	games := []Game{
		{ID: 13, Name: "Catan", Rank: 429, GeekRating: 6.9, MinPlayers: 3, MaxPlayers: 4,
			RecommendedPlayers: 4, MaxPlayTime: 120, Weight: 2.3, Hash: "h13"},
		{ID: 822, Name: "Carcassonne", Rank: 64, GeekRating: 7.3, MinPlayers: 2, MaxPlayers: 5,
			RecommendedPlayers: 2, MaxPlayTime: 45, Weight: 1.9, Hash: "h822"},
		{ID: 30549, Name: "Pandemic", Rank: 106, GeekRating: 7.5, MinPlayers: 2, MaxPlayers: 4,
			RecommendedPlayers: 4, MaxPlayTime: 45, Weight: 2.4, Cooperative: true, Hash: "h30549"},
		// Expansion: unranked.
		{ID: 4759, Name: "Catan: Seafarers", Rank: 0, GeekRating: 6.8, MinPlayers: 3, MaxPlayers: 4,
			RecommendedPlayers: 4, MaxPlayTime: 120, Weight: 2.6, Hash: "h4759"},
	}
	for i := range games {
		_, err := store.Upsert(&games[i])
		require.NoError(t, err)
	}
	require.NoError(t, store.AddOwnership("alice", 13))
	require.NoError(t, store.AddOwnership("alice", 30549))
	require.NoError(t, store.AddOwnership("bob", 822))
	return store
}

func names(games []Game) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Name
	}
	return out
}

func TestSearchDefaults(t *testing.T) {
	store := seedSearchStore(t)
	games, err := store.Search(Criteria{})
	require.NoError(t, err)
	// Expansions excluded, ordered by geekRating descending.
	assert.Equal(t, []string{"Pandemic", "Carcassonne", "Catan"}, names(games))
}

func TestSearchIncludeExpansions(t *testing.T) {
	store := seedSearchStore(t)
	games, err := store.Search(Criteria{IncludeExpansions: true})
	require.NoError(t, err)
	assert.Len(t, games, 4)
}

func TestSearchOwner(t *testing.T) {
	store := seedSearchStore(t)
	games, err := store.Search(Criteria{Owner: "alice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pandemic", "Catan"}, names(games))
}

func TestSearchCooperative(t *testing.T) {
	store := seedSearchStore(t)
	coop := true
	games, err := store.Search(Criteria{Cooperative: &coop})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pandemic"}, names(games))

	coop = false
	games, err = store.Search(Criteria{Cooperative: &coop})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carcassonne", "Catan"}, names(games))
}

func TestSearchPlayTimeAndWeight(t *testing.T) {
	store := seedSearchStore(t)
	games, err := store.Search(Criteria{MaxPlayTime: 60})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pandemic", "Carcassonne"}, names(games))

	games, err = store.Search(Criteria{MaxWeight: 2.0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carcassonne"}, names(games))
}

func TestSearchPlayers(t *testing.T) {
	store := seedSearchStore(t)

	// "Supports 5 players" checks the min/max range.
	games, err := store.Search(Criteria{NumPlayers: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carcassonne"}, names(games))

	// "Recommended for 2" matches the derived count exactly.
	games, err = store.Search(Criteria{NumPlayers: 2, PlayersRecommended: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carcassonne"}, names(games))

	games, err = store.Search(Criteria{NumPlayers: 4, PlayersRecommended: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pandemic", "Catan"}, names(games))
}

func TestSearchName(t *testing.T) {
	store := seedSearchStore(t)

	games, err := store.Search(Criteria{Name: "cat", IncludeExpansions: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Catan", "Catan: Seafarers"}, names(games))

	games, err = store.Search(Criteria{Name: "/^Catan$/", IncludeExpansions: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Catan"}, names(games))
}

func TestSearchSortAndLimit(t *testing.T) {
	store := seedSearchStore(t)

	games, err := store.Search(Criteria{SortBy: "name", Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carcassonne", "Catan", "Pandemic"}, names(games))

	games, err = store.Search(Criteria{SortBy: "weight", Ascending: true, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Carcassonne", "Catan"}, names(games))

	// Only allow-listed fields are sortable.
	_, err = store.Search(Criteria{SortBy: "hash"})
	assert.ErrorContains(t, err, "unsortable field")

	// The cap applies after the name filter.
	games, err = store.Search(Criteria{Name: "cat", IncludeExpansions: true, Limit: 1, SortBy: "name", Ascending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Catan"}, names(games))
}
