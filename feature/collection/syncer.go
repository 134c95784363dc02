package collection

import (
	"context"

	"gameshelf/feature/catalog"

	"go.uber.org/zap"
)

// Catalog is the remote side of a sync. *catalog.Client satisfies it; tests
// substitute fakes.
type Catalog interface {
	FetchCollection(ctx context.Context, username, pattern string) ([]*catalog.Record, error)
	catalog.DetailFetcher
}

// Syncer reconciles one user's remote collection against the store.
type Syncer struct {
	catalog Catalog
	store   *Store
	logger  *zap.Logger
}

// NewSyncer wires a syncer with explicit dependencies.
func NewSyncer(cat Catalog, store *Store, logger *zap.Logger) *Syncer {
	return &Syncer{catalog: cat, store: store, logger: logger}
}

// Sync runs one reconciliation pass for the user and returns the number of
// remote records processed.
//
// Detail fetches are the expensive part of a pass, so a record is only
// completed and upserted when it is new locally or fullDetail is set;
// otherwise the stored row is left as is. Ownership pruning runs only when
// pattern is empty and the pass reported at least one record: a filtered
// enumeration says nothing about games outside the filter, and an empty one
// says nothing at all. Orphan pruning runs after every pass.
//
// A failure mid-pass aborts with nothing rolled back: rows already upserted
// stay (the next pass is idempotent over them), and neither pruning step
// runs.
func (s *Syncer) Sync(ctx context.Context, username, pattern string, fullDetail bool) (int, error) {
	records, err := s.catalog.FetchCollection(ctx, username, pattern)
	if err != nil {
		return 0, err
	}

	seen := make(map[int]struct{}, len(records))
	for _, rec := range records {
		seen[rec.ID] = struct{}{}
		existing, err := s.store.GetGame(rec.ID)
		if err != nil {
			return 0, err
		}
		if fullDetail || existing == nil {
			if err := rec.EnsureDetails(ctx, s.catalog); err != nil {
				return 0, err
			}
			outcome, err := s.store.Upsert(GameFromRecord(rec))
			if err != nil {
				return 0, err
			}
			s.logger.Info(outcome.String(),
				zap.Int("id", rec.ID), zap.String("name", rec.Name))
		} else {
			s.logger.Debug("detail fetch skipped",
				zap.Int("id", rec.ID), zap.String("name", rec.Name))
		}

		owned, err := s.store.OwnershipExists(username, rec.ID)
		if err != nil {
			return 0, err
		}
		if !owned {
			if err := s.store.AddOwnership(username, rec.ID); err != nil {
				return 0, err
			}
			s.logger.Info("ownership added",
				zap.String("username", username), zap.Int("id", rec.ID))
		}
	}

	// A pass that reported zero records authorizes no pruning: the
	// document may have carried only non-boardgame subtypes, which says
	// nothing about what the user still owns.
	if pattern == "" && len(records) > 0 {
		removed, err := s.store.PruneOwnership(username, seen)
		if err != nil {
			return 0, err
		}
		for _, g := range removed {
			s.logger.Info("ownership removed",
				zap.String("username", username),
				zap.Int("id", g.ID), zap.String("name", g.Name))
		}
	}

	orphans, err := s.store.PruneOrphans()
	if err != nil {
		return 0, err
	}
	for _, g := range orphans {
		s.logger.Info("orphan removed",
			zap.Int("id", g.ID), zap.String("name", g.Name))
	}

	s.logger.Info("sync complete",
		zap.String("username", username), zap.Int("processed", len(records)))
	return len(records), nil
}
