package cmd

import (
	"context"

	"gameshelf/core/storage"
	"gameshelf/feature/artwork"
	"gameshelf/feature/catalog"

	"github.com/spf13/cobra"
)

var mirrorFlags criteriaFlags

// mirrorCmd copies cover artwork into object storage.
var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror cover artwork into object storage",
	Long: `Mirror downloads the cover image and thumbnail of every selected game
into the configured S3-compatible bucket, skipping objects that already
exist. Selection uses the same filters as search; by default every
stored game, expansions included, is mirrored.`,
	RunE: runMirror,
}

func init() {
	mirrorFlags.register(mirrorCmd)
	RootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	defer app.logger.Sync()

	criteria, err := mirrorFlags.criteria()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("expansions") {
		criteria.IncludeExpansions = true
	}
	games, err := app.store.Search(criteria)
	if err != nil {
		return err
	}

	client, err := storage.NewClient(app.cfg.Storage)
	if err != nil {
		return err
	}

	httpClient := catalog.NewClient(app.cfg.Catalog, app.logger).HTTPClient()
	mirror := artwork.NewMirror(client, app.cfg.Storage.Bucket, httpClient, app.logger)
	_, err = mirror.Run(context.Background(), games)
	return err
}
