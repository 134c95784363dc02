package collection

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// Outcome classifies the effect of an Upsert.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeInserted
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Store is the persistence boundary for games and ownership edges.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Init provisions the schema if it is absent. AutoMigrate only creates
// what is missing, so repeated calls are safe.
func (s *Store) Init() error {
	if err := s.db.AutoMigrate(&Game{}, &Ownership{}); err != nil {
		return fmt.Errorf("store: migrate schema: %w", err)
	}
	return nil
}

// GetGame returns the game by id, or nil when it is not stored.
func (s *Store) GetGame(id int) (*Game, error) {
	var game Game
	err := s.db.First(&game, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get game %d: %w", id, err)
	}
	return &game, nil
}

// Upsert inserts the game if absent, updates it if the content hash
// differs, and otherwise writes nothing. Repeated syncs of unchanged data
// therefore produce zero writes.
func (s *Store) Upsert(game *Game) (Outcome, error) {
	existing, err := s.GetGame(game.ID)
	if err != nil {
		return OutcomeUnchanged, err
	}
	switch {
	case existing == nil:
		if err := s.db.Create(game).Error; err != nil {
			return OutcomeUnchanged, fmt.Errorf("store: insert game %d: %w", game.ID, err)
		}
		return OutcomeInserted, nil
	case existing.Hash != game.Hash:
		if err := s.db.Save(game).Error; err != nil {
			return OutcomeUnchanged, fmt.Errorf("store: update game %d: %w", game.ID, err)
		}
		return OutcomeUpdated, nil
	default:
		return OutcomeUnchanged, nil
	}
}

// OwnershipExists reports whether the edge is present.
func (s *Store) OwnershipExists(username string, gameID int) (bool, error) {
	var count int64
	err := s.db.Model(&Ownership{}).
		Where("username = ? AND game_id = ?", username, gameID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("store: check ownership: %w", err)
	}
	return count > 0, nil
}

// AddOwnership records that the user owns the game.
func (s *Store) AddOwnership(username string, gameID int) error {
	edge := Ownership{Username: username, GameID: gameID}
	if err := s.db.Create(&edge).Error; err != nil {
		return fmt.Errorf("store: add ownership %s/%d: %w", username, gameID, err)
	}
	return nil
}

// OwnedGameIDs returns the ids the user currently owns locally.
func (s *Store) OwnedGameIDs(username string) ([]int, error) {
	var ids []int
	err := s.db.Model(&Ownership{}).
		Where("username = ?", username).
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("store: owned ids for %s: %w", username, err)
	}
	return ids, nil
}

// PruneOwnership deletes the user's edges for games not in seen and
// returns the affected game records. Callers must only invoke this after a
// complete, unfiltered sync pass; under a filter "not seen" does not mean
// "no longer owned".
func (s *Store) PruneOwnership(username string, seen map[int]struct{}) ([]Game, error) {
	owned, err := s.OwnedGameIDs(username)
	if err != nil {
		return nil, err
	}
	var stale []int
	for _, id := range owned {
		if _, ok := seen[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}
	sort.Ints(stale)
	var games []Game
	if err := s.db.Find(&games, "id IN ?", stale).Error; err != nil {
		return nil, fmt.Errorf("store: load stale games: %w", err)
	}
	err = s.db.Where("username = ? AND game_id IN ?", username, stale).
		Delete(&Ownership{}).Error
	if err != nil {
		return nil, fmt.Errorf("store: prune ownership for %s: %w", username, err)
	}
	return games, nil
}

// PruneOrphans deletes every game with zero remaining ownership edges and
// returns the removed records. Orphan status derives purely from edge
// existence, so this runs after every pass, filtered or not.
func (s *Store) PruneOrphans() ([]Game, error) {
	var orphans []Game
	sub := s.db.Model(&Ownership{}).Select("game_id")
	if err := s.db.Where("id NOT IN (?)", sub).Find(&orphans).Error; err != nil {
		return nil, fmt.Errorf("store: find orphans: %w", err)
	}
	if len(orphans) == 0 {
		return nil, nil
	}
	ids := make([]int, len(orphans))
	for i, g := range orphans {
		ids[i] = g.ID
	}
	if err := s.db.Delete(&Game{}, "id IN ?", ids).Error; err != nil {
		return nil, fmt.Errorf("store: delete orphans: %w", err)
	}
	return orphans, nil
}

// Users returns the distinct usernames with at least one owned game,
// sorted ascending.
func (s *Store) Users() ([]string, error) {
	var users []string
	err := s.db.Model(&Ownership{}).
		Distinct("username").
		Order("username").
		Pluck("username", &users).Error
	if err != nil {
		return nil, fmt.Errorf("store: list users: %w", err)
	}
	return users, nil
}
