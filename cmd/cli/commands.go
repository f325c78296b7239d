package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vytor/rankedversus/internal/cache"
	"github.com/vytor/rankedversus/internal/db"
	"github.com/vytor/rankedversus/internal/jobs"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/metrics"
	"github.com/vytor/rankedversus/internal/present"
	"github.com/vytor/rankedversus/internal/query"
	"github.com/vytor/rankedversus/internal/ranked"
	"github.com/vytor/rankedversus/internal/repository/sqlite"
	"github.com/vytor/rankedversus/internal/services"
	"github.com/vytor/rankedversus/internal/worker"
)

var (
	filterBy, filterCmp, sortBy string
	filterValue                 int64
	sortDesc                    bool
	warmWorkers, warmLimit      int
	warmQueue                   int
)

func init() {
	f := versusCmd.Flags()
	f.StringVar(&filterBy, "fb", "", "Field to filter on (default total)")
	f.StringVar(&filterCmp, "fc", "", "Comparator name or code: less, less_equal, equal, greater_equal, greater")
	f.Int64Var(&filterValue, "fv", 0, "Value to compare the filter field against")
	f.StringVar(&sortBy, "sb", "", "Field to sort on (default total)")
	f.BoolVar(&sortDesc, "sd", true, "Sort descending")

	warmCmd.Flags().IntVar(&warmWorkers, "workers", 0, "Concurrent refreshes (default WARM_WORKER_COUNT)")
	warmCmd.Flags().IntVar(&warmLimit, "limit", 0, "Refresh at most this many players (0 means all)")
	warmCmd.Flags().IntVar(&warmQueue, "queue", 256, "Players queued at once; the rest are skipped")

	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(warmCmd)
}

var versusCmd = &cobra.Command{
	Use:   "versus <username>",
	Short: "Refresh a player's cache and print their head-to-head records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			criteria := present.ParseCriteria(criteriaParams(cmd))
			records, err := a.versus.Records(ctx, args[0], query.New(ctx, criteria.Filters, criteria.Sorts))
			if err != nil {
				return err
			}

			out := present.NewTableWriter(cmd.OutOrStdout())
			if err := out.Player(present.NewPlayerHeader(records.Player), records.Loaded, records.Opponents); err != nil {
				return err
			}
			return out.Opponents(present.OpponentCards(records.Player.Nickname, records.Results))
		})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches <username> <opponent>",
	Short: "Print the latest ranked matches between two players",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			player, matches, err := a.versus.VersusMatches(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), present.VersusURL(player.Nickname, args[1]))
			return present.NewTableWriter(cmd.OutOrStdout()).Matches(present.MatchRows(*player, matches))
		})
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current season leaderboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			lb, err := a.versus.Leaderboard(ctx)
			if err != nil {
				return err
			}
			players := make([]present.PlayerHeader, 0, len(lb.Users))
			for _, p := range lb.Users {
				players = append(players, present.NewPlayerHeader(p))
			}
			return present.NewTableWriter(cmd.OutOrStdout()).Leaderboard(lb.Season.Number, players)
		})
	},
}

var warmCmd = &cobra.Command{
	Use:   "warm [usernames...]",
	Short: "Refresh the cache for the named players, or the leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			workers := warmWorkers
			if workers <= 0 {
				workers = cfg.WarmWorkerCount
			}
			limit := warmLimit
			if limit <= 0 {
				limit = cfg.WarmLimit
			}

			pool := worker.NewPool(workers, max(warmQueue, cfg.WarmQueueSize))
			pool.Start(ctx)
			warm := services.NewWarmService(a.client, jobs.NewWorkerQueue(pool, a.versus))

			queued, err := warm.Warm(ctx, args, limit)
			// Stop drains what was queued before returning.
			pool.Stop()
			if err != nil {
				return err
			}

			stats := pool.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "queued %d, refreshed %d, failed %d\n", queued, stats.Completed, stats.Failed)
			if stats.Failed > 0 {
				return fmt.Errorf("%d refreshes failed", stats.Failed)
			}
			return nil
		})
	},
}

type app struct {
	client ranked.ClientInterface
	versus services.VersusService
}

// withApp wires the pipeline against the local cache and runs fn with a
// context cancelled on interrupt.
func withApp(cmd *cobra.Command, fn func(context.Context, *app) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx = logger.NewContext(ctx, logger.Default())

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer database.Close()

	client := ranked.New(cfg.RankedAPIURL, cfg.HTTPTimeout)
	store := cache.New(sqlite.NewKeyValueRepository(database.DB))
	return fn(ctx, &app{
		client: client,
		versus: services.NewVersusService(client, store, metrics.Noop{}),
	})
}

// criteriaParams turns the flags that were set into the query parameters the
// web viewer uses, so both share one parser.
func criteriaParams(cmd *cobra.Command) url.Values {
	v := url.Values{}
	flags := cmd.Flags()
	if flags.Changed("fb") {
		v.Set(present.ParamFilterBy, filterBy)
	}
	if flags.Changed("fc") {
		v.Set(present.ParamFilterCmp, filterCmp)
	}
	if flags.Changed("fv") {
		v.Set(present.ParamFilterValue, strconv.FormatInt(filterValue, 10))
	}
	if flags.Changed("sb") {
		v.Set(present.ParamSortBy, sortBy)
	}
	if flags.Changed("sd") {
		if sortDesc {
			v.Set(present.ParamSortDir, "1")
		} else {
			v.Set(present.ParamSortDir, "0")
		}
	}
	return v
}
