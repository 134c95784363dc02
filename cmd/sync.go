package cmd

import (
	"context"

	"gameshelf/feature/catalog"
	"gameshelf/feature/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncFilter string
	syncFull   bool
)

// syncCmd reconciles one user's remote collection into the local store.
var syncCmd = &cobra.Command{
	Use:   "sync <username>",
	Short: "Sync a user's collection from BoardGameGeek",
	Long: `Sync pulls a user's owned collection from BoardGameGeek and reconciles
it against the local database: new games are inserted, changed games
updated, unchanged games left alone.

A full pass (no --filter) also removes ownership of games the user no
longer owns remotely, and games owned by nobody are deleted after every
pass.

Examples:
  # Full sync
  gameshelf sync alice

  # Only games whose name contains "catan"
  gameshelf sync alice --filter catan

  # Refresh detail fields for already-known games too
  gameshelf sync alice --full`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncFilter, "filter", "", "Name pattern (/regex/ or substring); filtered syncs never prune ownership")
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "Fetch details and re-upsert games that are already stored")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	defer app.logger.Sync()

	username := args[0]
	client := catalog.NewClient(app.cfg.Catalog, app.logger)
	syncer := collection.NewSyncer(client, app.store, app.logger)

	processed, err := syncer.Sync(context.Background(), username, syncFilter, syncFull)
	if err != nil {
		return err
	}
	app.logger.Info("processed records",
		zap.String("username", username), zap.Int("count", processed))
	return nil
}
