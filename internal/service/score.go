package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// ScoreService - the durable per-player statistics table.
type ScoreService interface {
	EnsurePlayer(ctx context.Context, player *entity.Player, scope string) (*entity.PlayerStats, error)
	RecordOutcome(ctx context.Context, winner, loser *entity.Player, scope string, isDraw bool) error

	GetPlayer(ctx context.Context, playerID string) (*entity.PlayerStats, error)
	All(ctx context.Context) []*entity.PlayerStats
}

type scoreRepo interface {
	Load(ctx context.Context) (entity.ScoreTable, error)
	Save(ctx context.Context, table entity.ScoreTable) error
}

type scoreService struct {
	logger *slog.Logger

	scoreRepo scoreRepo
	table     entity.ScoreTable
}

// NewScoreService - loads the whole table once; every mutation overwrites it in full.
func NewScoreService(ctx context.Context, logger *slog.Logger, scoreRepo scoreRepo) (ScoreService, error) {
	table, err := scoreRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}

	if table == nil {
		table = entity.ScoreTable{}
	}

	logger.Info("scores loaded", "players", len(table))

	return &scoreService{
		logger:    logger,
		scoreRepo: scoreRepo,
		table:     table,
	}, nil
}

func (that *scoreService) EnsurePlayer(ctx context.Context, player *entity.Player, scope string) (*entity.PlayerStats, error) {
	var stats *entity.PlayerStats

	err := that.mutate(ctx, func(table entity.ScoreTable) {
		stats = ensure(table, player, scope)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure player %s: %w", player.ID, err)
	}

	return stats.Clone(), nil
}

// RecordOutcome - global and scoped counters are bumped independently.
func (that *scoreService) RecordOutcome(ctx context.Context, winner, loser *entity.Player, scope string, isDraw bool) error {
	log := that.logger.With("method", "RecordOutcome", "scope", scope)

	err := that.mutate(ctx, func(table entity.ScoreTable) {
		winnerStats := ensure(table, winner, scope)
		loserStats := ensure(table, loser, scope)

		if isDraw {
			winnerStats.Draws++
			loserStats.Draws++
		} else {
			winnerStats.Wins++
			loserStats.Losses++
		}

		if scope == "" {
			return
		}

		if isDraw {
			winnerStats.EnsureGroup(scope).Draws++
			loserStats.EnsureGroup(scope).Draws++
		} else {
			winnerStats.EnsureGroup(scope).Wins++
			loserStats.EnsureGroup(scope).Losses++
		}
	})
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	log.Info("outcome recorded", "winner", winner.ID, "loser", loser.ID, "draw", isDraw)

	return nil
}

func (that *scoreService) GetPlayer(_ context.Context, playerID string) (*entity.PlayerStats, error) {
	stats, ok := that.table[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
	}

	return stats.Clone(), nil
}

func (that *scoreService) All(_ context.Context) []*entity.PlayerStats {
	all := make([]*entity.PlayerStats, 0, len(that.table))
	for _, stats := range that.table {
		all = append(all, stats.Clone())
	}

	return all
}

// mutate - applies fn to a copy of the table and swaps it in only after Save succeeds.
func (that *scoreService) mutate(ctx context.Context, fn func(table entity.ScoreTable)) error {
	next := make(entity.ScoreTable, len(that.table)+2)
	for id, stats := range that.table {
		next[id] = stats.Clone()
	}

	fn(next)

	if err := that.scoreRepo.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	that.table = next

	return nil
}

// ensure - get-or-create for player and, when scope is set, its group record.
func ensure(table entity.ScoreTable, player *entity.Player, scope string) *entity.PlayerStats {
	stats, ok := table[player.ID]
	if !ok {
		stats = entity.NewPlayerStats(player.ID, player.Name)
		table[player.ID] = stats
	}

	if player.Name != "" {
		stats.Name = player.Name
	}

	if scope != "" {
		stats.EnsureGroup(scope)
	}

	return stats
}
