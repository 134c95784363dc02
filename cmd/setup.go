package cmd

import (
	"fmt"

	"gameshelf/core/config"
	"gameshelf/core/database"
	"gameshelf/core/logger"
	"gameshelf/feature/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// appContext bundles the dependencies every command needs.
type appContext struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *collection.Store
}

// setup loads config, builds the logger, connects the database and
// initializes the store schema. Commands call it at the top of RunE.
func setup() (*appContext, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := collection.NewStore(db)
	if err := store.Init(); err != nil {
		return nil, err
	}

	return &appContext{cfg: cfg, logger: l, store: store}, nil
}

// criteriaFlags binds the shared search criteria flags used by the search,
// labels and mirror commands.
type criteriaFlags struct {
	owner       string
	coop        string
	expansions  bool
	maxTime     int
	maxWeight   float64
	players     int
	recommended bool
	name        string
	sortBy      string
	ascending   bool
	limit       int
}

func (f *criteriaFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.owner, "owner", "", "Restrict to games owned by this user")
	cmd.Flags().StringVar(&f.coop, "coop", "", "Filter by cooperative flag (true/false)")
	cmd.Flags().BoolVar(&f.expansions, "expansions", false, "Include expansions (unranked games)")
	cmd.Flags().IntVar(&f.maxTime, "max-time", 0, "Maximum play time in minutes")
	cmd.Flags().Float64Var(&f.maxWeight, "max-weight", 0, "Maximum complexity weight")
	cmd.Flags().IntVar(&f.players, "players", 0, "Player count the game must support")
	cmd.Flags().BoolVar(&f.recommended, "recommended", false, "Match the recommended player count instead of the supported range")
	cmd.Flags().StringVar(&f.name, "name", "", "Name pattern (/regex/ or substring)")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "Sort field (default geekRating)")
	cmd.Flags().BoolVar(&f.ascending, "asc", false, "Sort ascending instead of descending")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum number of results")
}

func (f *criteriaFlags) criteria() (collection.Criteria, error) {
	criteria := collection.Criteria{
		Owner:              f.owner,
		IncludeExpansions:  f.expansions,
		MaxPlayTime:        f.maxTime,
		MaxWeight:          f.maxWeight,
		NumPlayers:         f.players,
		PlayersRecommended: f.recommended,
		Name:               f.name,
		SortBy:             f.sortBy,
		Ascending:          f.ascending,
		Limit:              f.limit,
	}
	switch f.coop {
	case "":
	case "true", "false":
		coop := f.coop == "true"
		criteria.Cooperative = &coop
	default:
		return criteria, fmt.Errorf("invalid --coop value %q, want true or false", f.coop)
	}
	return criteria, nil
}
