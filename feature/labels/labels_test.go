package labels

import (
	"bytes"
	"fmt"
	"testing"

	"gameshelf/feature/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGames(n int) []collection.Game {
	games := make([]collection.Game, 0, n)
	for i := 1; i <= n; i++ {
		games = append(games, collection.Game{
			ID:                 i,
			Name:               fmt.Sprintf("Game %d", i),
			MinPlayers:         2,
			MaxPlayers:         4,
			RecommendedPlayers: 3,
			PlayTime:           60,
			GeekRating:         7.2,
			Weight:             2.4,
		})
	}
	return games
}

func TestBuildFillsSheets(t *testing.T) {
	gen := NewGenerator()
	require.NoError(t, gen.Build(sampleGames(31)))

	// 30 labels per page, so the 31st spills onto a second sheet.
	assert.Equal(t, 31, gen.Count())
	assert.Equal(t, 2, gen.PageCount())

	var buf bytes.Buffer
	require.NoError(t, gen.Output(&buf))
	assert.NotZero(t, buf.Len())
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestBuildEmpty(t *testing.T) {
	gen := NewGenerator()
	err := gen.Build(nil)
	assert.ErrorContains(t, err, "no games matched")
}

func TestSkipOffsetsPositions(t *testing.T) {
	gen := NewGenerator()
	require.NoError(t, gen.Skip(29).Build(sampleGames(2)))

	// One label lands on the first page, the skip pushes the second over.
	assert.Equal(t, 2, gen.Count())
	assert.Equal(t, 2, gen.PageCount())
}

func TestCooperativeFlagRenders(t *testing.T) {
	gen := NewGenerator()
	games := sampleGames(1)
	games[0].Cooperative = true
	require.NoError(t, gen.Build(games))

	var buf bytes.Buffer
	require.NoError(t, gen.Output(&buf))
	assert.NotZero(t, buf.Len())
}
