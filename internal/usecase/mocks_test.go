package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

type mockScoreRecorder struct {
	mock.Mock
}

func (that *mockScoreRecorder) RecordOutcome(ctx context.Context, winner, loser *entity.Player, scope string, isDraw bool) error {
	args := that.Called(ctx, winner, loser, scope, isDraw)
	return args.Error(0)
}

type mockScoreService struct {
	mock.Mock
}

func (that *mockScoreService) EnsurePlayer(ctx context.Context, player *entity.Player, scope string) (*entity.PlayerStats, error) {
	args := that.Called(ctx, player, scope)

	stats, _ := args.Get(0).(*entity.PlayerStats)
	return stats, args.Error(1)
}

type mockRankingService struct {
	mock.Mock
}

func (that *mockRankingService) GlobalRank(ctx context.Context, playerID string) (*entity.RankInfo, error) {
	args := that.Called(ctx, playerID)

	rank, _ := args.Get(0).(*entity.RankInfo)
	return rank, args.Error(1)
}

func (that *mockRankingService) GroupRank(ctx context.Context, scope, playerID string) (*entity.RankInfo, error) {
	args := that.Called(ctx, scope, playerID)

	rank, _ := args.Get(0).(*entity.RankInfo)
	return rank, args.Error(1)
}

func (that *mockRankingService) Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error) {
	args := that.Called(ctx, scope, limit)

	standings, _ := args.Get(0).([]entity.Standing)
	return standings, args.Error(1)
}
