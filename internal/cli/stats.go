package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-chatbot/internal"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/service"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
)

const defaultTop = 10

// StatsCmd returns the stats command
func StatsCmd(configPath *string) *cobra.Command {
	var (
		group string
		top   int
	)

	cmd := &cobra.Command{
		Use:   "stats <player-id>",
		Short: "Show a player's record, rank and the leaderboard",
		Long: `Read the configured score backend and print the player's record and rank,
globally or in one chat group (--group), followed by the top players.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			scoreRepo, closeScores, err := app.OpenScoreRepository(ctx, conf)
			if err != nil {
				return err
			}
			defer func() { _ = closeScores() }()

			// stats are read-only here; keep the logs out of the report
			scores, err := service.NewScoreService(ctx, slog.New(slog.NewJSONHandler(io.Discard, nil)), scoreRepo)
			if err != nil {
				return err
			}

			report := &statsReport{
				scores: scores,
				stats:  usecase.NewStatsUseCase(scores, service.NewRankingService(scores)),
			}

			return report.print(ctx, cmd.OutOrStdout(), args[0], group, top)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "rank inside this chat group instead of globally")
	cmd.Flags().IntVarP(&top, "top", "t", defaultTop, "leaderboard size, 0 for everyone")

	return cmd
}

type playerSource interface {
	GetPlayer(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type statsSource interface {
	Rank(ctx context.Context, kind, scope, playerID string) (*entity.RankInfo, error)
	Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error)
}

type statsReport struct {
	scores playerSource
	stats  statsSource
}

func (that *statsReport) print(ctx context.Context, w io.Writer, playerID, group string, top int) error {
	stats, err := that.scores.GetPlayer(ctx, playerID)
	if err != nil {
		return err
	}

	title := color.New(color.Bold)
	highlight := color.New(color.FgHiMagenta)

	title.Fprintf(w, "%s (%s)\n", displayName(stats.Name, stats.ID), stats.ID)
	fmt.Fprintf(w, "  global: %s, %d played\n", formatRecord(stats.Record), stats.Played())
	for _, scope := range slices.Sorted(maps.Keys(stats.Groups)) {
		if group == "" || scope == group {
			record := stats.Groups[scope]
			fmt.Fprintf(w, "  group %s: %s, %d played\n", scope, formatRecord(*record), record.Played())
		}
	}

	kind := usecase.RankGlobal
	if group != "" {
		kind = usecase.RankGroup
	}

	rank, err := that.stats.Rank(ctx, kind, group, playerID)
	switch {
	case errors.Is(err, apperror.ErrPlayerNotFound):
		color.New(color.FgYellow).Fprintf(w, "  rank: not ranked in %s\n", group)
	case err != nil:
		return err
	default:
		fmt.Fprintf(w, "  rank: %s\n", color.New(color.FgGreen).Sprintf("%d/%d", rank.Position, rank.Total))
	}

	standings, err := that.stats.Leaderboard(ctx, group, top)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	if group == "" {
		title.Fprintln(w, "Leaderboard")
	} else {
		title.Fprintf(w, "Leaderboard of %s\n", group)
	}

	for _, standing := range standings {
		line := fmt.Sprintf("%3d. %s  %s", standing.Position, displayName(standing.Name, standing.PlayerID), formatRecord(standing.Record))
		if standing.PlayerID == playerID {
			line = highlight.Sprint(line + " ←")
		}
		fmt.Fprintln(w, line)
	}

	return nil
}

func formatRecord(record entity.Record) string {
	return fmt.Sprintf("%dW %dL %dD", record.Wins, record.Losses, record.Draws)
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
