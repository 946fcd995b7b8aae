package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// RankingService - standings ordered by wins, descending. Ties are ordered by
// player id so the same table always produces the same positions.
type RankingService interface {
	GlobalRank(ctx context.Context, playerID string) (*entity.RankInfo, error)
	GroupRank(ctx context.Context, scope, playerID string) (*entity.RankInfo, error)
	Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error)
}

type statsSource interface {
	All(ctx context.Context) []*entity.PlayerStats
}

type rankingService struct {
	stats statsSource
}

func NewRankingService(stats statsSource) RankingService {
	return &rankingService{
		stats: stats,
	}
}

func (that *rankingService) GlobalRank(ctx context.Context, playerID string) (*entity.RankInfo, error) {
	return rankOf(that.standings(ctx, ""), "", playerID)
}

// GroupRank - an empty scope names no group, so nobody is ranked in it.
func (that *rankingService) GroupRank(ctx context.Context, scope, playerID string) (*entity.RankInfo, error) {
	if scope == "" {
		return nil, fmt.Errorf("%w: %s has no group record without a group", apperror.ErrPlayerNotFound, playerID)
	}

	return rankOf(that.standings(ctx, scope), scope, playerID)
}

// Leaderboard - top limit standings; limit <= 0 returns all of them.
func (that *rankingService) Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error) {
	standings := that.standings(ctx, scope)
	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}

	return standings, nil
}

// standings - global when scope is empty, otherwise only players with a record in scope.
func (that *rankingService) standings(ctx context.Context, scope string) []entity.Standing {
	all := that.stats.All(ctx)
	standings := make([]entity.Standing, 0, len(all))

	for _, stats := range all {
		record := stats.Record
		if scope != "" {
			group := stats.Group(scope)
			if group == nil {
				continue
			}
			record = *group
		}

		standings = append(standings, entity.Standing{
			PlayerID: stats.ID,
			Name:     stats.Name,
			Record:   record,
		})
	}

	slices.SortFunc(standings, func(a, b entity.Standing) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})

	for i := range standings {
		standings[i].Position = i + 1
	}

	return standings
}

func rankOf(standings []entity.Standing, scope, playerID string) (*entity.RankInfo, error) {
	for _, standing := range standings {
		if standing.PlayerID == playerID {
			return &entity.RankInfo{
				Scope:    scope,
				Position: standing.Position,
				Total:    len(standings),
				Standing: standing,
			}, nil
		}
	}

	if scope != "" {
		return nil, fmt.Errorf("%w: %s in group %s", apperror.ErrPlayerNotFound, playerID, scope)
	}

	return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, playerID)
}
