package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchFlags criteriaFlags

// searchCmd queries the local store.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the local game collection",
	Long: `Search queries the synced local database without touching the remote API.
All filters are composable; expansions are excluded unless --expansions
is given.

Examples:
  # Alice's co-op games for 4 players, lightest first
  gameshelf search --owner alice --coop true --players 4 --sort weight --asc

  # Exact-name regex lookup
  gameshelf search --name "/^Catan$/"`,
	RunE: runSearch,
}

func init() {
	searchFlags.register(searchCmd)
	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	app, err := setup()
	if err != nil {
		return err
	}
	defer app.logger.Sync()

	criteria, err := searchFlags.criteria()
	if err != nil {
		return err
	}
	games, err := app.store.Search(criteria)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tYEAR\tPLAYERS\tTIME\tRATING\tWEIGHT\tCO-OP")
	for _, g := range games {
		coop := "no"
		if g.Cooperative {
			coop = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%0.1f\t%0.1f\t%s\n",
			g.ID, g.Name, g.YearPublished, g.Players(), g.PlayTimeRange(),
			g.GeekRating, g.Weight, coop)
	}
	return w.Flush()
}
