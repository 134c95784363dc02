package collection

import (
	"fmt"

	"gameshelf/feature/catalog"

	"gorm.io/gorm/clause"
)

// Criteria describes a parameterized game search. Zero values mean "no
// constraint" except IncludeExpansions, whose zero value excludes
// expansions (rank 0 rows).
type Criteria struct {
	// Owner restricts results to games owned by this user.
	Owner string
	// Cooperative, when set, matches only games with that co-op flag.
	Cooperative *bool
	// IncludeExpansions also returns unranked (rank 0) records.
	IncludeExpansions bool
	// MaxPlayTime is an upper bound on the maximum play time, in minutes.
	MaxPlayTime int
	// MaxWeight is an upper bound on the complexity weight.
	MaxWeight float64
	// NumPlayers matches games supporting this player count, or, with
	// PlayersRecommended, games recommending exactly this count.
	NumPlayers         int
	PlayersRecommended bool
	// Name filters by pattern with the catalog matcher semantics:
	// slash-delimited regex, otherwise case-insensitive substring.
	Name string
	// SortBy selects the order field from the allow-list; empty means
	// geekRating. Ascending flips the default descending direction.
	SortBy    string
	Ascending bool
	// Limit caps the result count; 0 means unlimited.
	Limit int
}

// sortColumns is the allow-list of order fields. Keys are the caller-facing
// names, values the underlying columns.
var sortColumns = map[string]string{
	"name":          "name",
	"yearPublished": "year_published",
	"rank":          "rank",
	"geekRating":    "geek_rating",
	"averageRating": "average_rating",
	"numVoters":     "num_voters",
	"weight":        "weight",
	"playTime":      "play_time",
}

// Search returns the games matching the criteria, ordered by the selected
// field. All predicates are composable and independent.
func (s *Store) Search(c Criteria) ([]Game, error) {
	sortBy := c.SortBy
	if sortBy == "" {
		sortBy = "geekRating"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, fmt.Errorf("store: unsortable field %q", sortBy)
	}

	q := s.db.Model(&Game{})
	if c.Owner != "" {
		q = q.Distinct("games.*").
			Joins("JOIN ownerships ON ownerships.game_id = games.id").
			Where("ownerships.username = ?", c.Owner)
	}
	if c.Cooperative != nil {
		q = q.Where("cooperative = ?", *c.Cooperative)
	}
	if !c.IncludeExpansions {
		q = q.Where("`rank` > 0")
	}
	if c.MaxPlayTime > 0 {
		q = q.Where("max_play_time <= ?", c.MaxPlayTime)
	}
	if c.MaxWeight > 0 {
		q = q.Where("weight <= ?", c.MaxWeight)
	}
	if c.NumPlayers > 0 {
		if c.PlayersRecommended {
			q = q.Where("recommended_players = ?", c.NumPlayers)
		} else {
			q = q.Where("min_players <= ? AND max_players >= ?", c.NumPlayers, c.NumPlayers)
		}
	}
	q = q.Order(clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   !c.Ascending,
	})

	var games []Game
	if err := q.Find(&games).Error; err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}

	// The name pattern may be a regex, which cannot be pushed into SQL
	// portably, so it is applied here; the cap applies after filtering.
	if c.Name != "" {
		matcher := catalog.NewMatcher(c.Name)
		filtered := games[:0]
		for _, g := range games {
			if matcher.Match(g.Name) {
				filtered = append(filtered, g)
			}
		}
		games = filtered
	}
	if c.Limit > 0 && len(games) > c.Limit {
		games = games[:c.Limit]
	}
	return games, nil
}
