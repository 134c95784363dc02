package collection

import (
	"fmt"

	"gameshelf/feature/catalog"
)

// Game is the persisted form of a catalog record. The ID is the remote
// catalog's identifier and never changes; Hash is the content digest used
// to detect no-op updates.
type Game struct {
	ID                 int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name               string  `gorm:"size:255" json:"name"`
	YearPublished      int     `json:"yearPublished"`
	Image              string  `gorm:"size:512" json:"image"`
	Thumbnail          string  `gorm:"size:512" json:"thumbnail"`
	MinPlayers         int     `json:"minPlayers"`
	MaxPlayers         int     `json:"maxPlayers"`
	RecommendedPlayers int     `json:"recommendedPlayers"`
	MinPlayTime        int     `json:"minPlayTime"`
	MaxPlayTime        int     `json:"maxPlayTime"`
	PlayTime           int     `json:"playTime"`
	GeekRating         float64 `json:"geekRating"`
	AverageRating      float64 `json:"averageRating"`
	NumVoters          int     `json:"numVoters"`
	Rank               int     `gorm:"column:rank" json:"rank"`
	Weight             float64 `json:"weight"`
	Cooperative        bool    `json:"cooperative"`
	Description        string  `gorm:"type:text" json:"description"`
	Hash               string  `gorm:"size:32" json:"hash"`
}

// Ownership is the (user, game) edge. Its existence means the user owned
// the game in the remote source of truth as of their last successful sync.
type Ownership struct {
	Username string `gorm:"primaryKey;size:64" json:"username"`
	GameID   int    `gorm:"primaryKey;autoIncrement:false" json:"gameId"`
	Game     Game   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Expansion reports whether the game is an expansion. The catalog leaves
// expansions unranked, so rank 0 is the marker.
func (g Game) Expansion() bool {
	return g.Rank == 0
}

// URL returns the catalog detail page for the game.
func (g Game) URL() string {
	return fmt.Sprintf("%s%d", catalog.DetailPageURL, g.ID)
}

// Players formats the supported player range, with the recommended count
// in parentheses when the range is not a single value.
func (g Game) Players() string {
	if g.MinPlayers == g.MaxPlayers {
		return fmt.Sprintf("%d", g.MinPlayers)
	}
	return fmt.Sprintf("%d - %d (%d)", g.MinPlayers, g.MaxPlayers, g.RecommendedPlayers)
}

// PlayTimeRange formats the play time range in minutes.
func (g Game) PlayTimeRange() string {
	if g.MinPlayTime == g.MaxPlayTime {
		return fmt.Sprintf("%d", g.MinPlayTime)
	}
	return fmt.Sprintf("%d - %d", g.MinPlayTime, g.MaxPlayTime)
}

// GameFromRecord converts a completed catalog record into its persisted
// form. The record's hash must already be computed.
func GameFromRecord(r *catalog.Record) *Game {
	return &Game{
		ID:                 r.ID,
		Name:               r.Name,
		YearPublished:      r.YearPublished,
		Image:              r.Image,
		Thumbnail:          r.Thumbnail,
		MinPlayers:         r.MinPlayers,
		MaxPlayers:         r.MaxPlayers,
		RecommendedPlayers: r.RecommendedPlayers,
		MinPlayTime:        r.MinPlayTime,
		MaxPlayTime:        r.MaxPlayTime,
		PlayTime:           r.PlayTime,
		GeekRating:         r.GeekRating,
		AverageRating:      r.AverageRating,
		NumVoters:          r.NumVoters,
		Rank:               r.Rank,
		Weight:             r.Weight,
		Cooperative:        r.Cooperative,
		Description:        r.Description,
		Hash:               r.Hash,
	}
}
