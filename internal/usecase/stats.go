package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const (
	RankGlobal = "global"
	RankGroup  = "group"
)

type StatsUseCase interface {
	Stats(ctx context.Context, user *entity.Player, scope string) (*entity.PlayerStats, error)
	Rank(ctx context.Context, kind, scope, playerID string) (*entity.RankInfo, error)
	Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error)
}

type scoreService interface {
	EnsurePlayer(ctx context.Context, player *entity.Player, scope string) (*entity.PlayerStats, error)
}

type rankingService interface {
	GlobalRank(ctx context.Context, playerID string) (*entity.RankInfo, error)
	GroupRank(ctx context.Context, scope, playerID string) (*entity.RankInfo, error)
	Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error)
}

type statsUseCase struct {
	scoreService   scoreService
	rankingService rankingService
}

func NewStatsUseCase(scoreService scoreService, rankingService rankingService) StatsUseCase {
	return &statsUseCase{
		scoreService:   scoreService,
		rankingService: rankingService,
	}
}

// Stats - asking for stats is first contact too, so the player is created if missing.
func (that *statsUseCase) Stats(ctx context.Context, user *entity.Player, scope string) (*entity.PlayerStats, error) {
	stats, err := that.scoreService.EnsurePlayer(ctx, user, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *statsUseCase) Rank(ctx context.Context, kind, scope, playerID string) (*entity.RankInfo, error) {
	var (
		rank *entity.RankInfo
		err  error
	)

	switch kind {
	case RankGlobal:
		rank, err = that.rankingService.GlobalRank(ctx, playerID)
	case RankGroup:
		rank, err = that.rankingService.GroupRank(ctx, scope, playerID)
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownRankKind, kind)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s rank: %w", kind, err)
	}

	return rank, nil
}

func (that *statsUseCase) Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error) {
	standings, err := that.rankingService.Leaderboard(ctx, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return standings, nil
}
