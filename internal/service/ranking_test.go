package service

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsList - fixed statsSource for ranking tests.
type statsList []*entity.PlayerStats

func (that statsList) All(_ context.Context) []*entity.PlayerStats {
	return that
}

func player(id string, wins int, groups map[string]int) *entity.PlayerStats {
	stats := entity.NewPlayerStats(id, "player "+id)
	stats.Wins = wins
	for scope, groupWins := range groups {
		stats.EnsureGroup(scope).Wins = groupWins
	}
	return stats
}

func rankingFixture() statsList {
	return statsList{
		player("a", 1, map[string]int{"chat": 3}),
		player("b", 5, nil),
		player("c", 3, map[string]int{"chat": 0}),
		player("d", 3, map[string]int{"chat": 3, "other": 1}),
	}
}

func TestRankingService_GlobalRank(t *testing.T) {
	ctx := context.Background()
	ranking := NewRankingService(rankingFixture())

	t.Run("Ranks by wins descending", func(t *testing.T) {
		rank, err := ranking.GlobalRank(ctx, "b")

		require.NoError(t, err)
		assert.Equal(t, 1, rank.Position)
		assert.Equal(t, 4, rank.Total)
		assert.Equal(t, 5, rank.Standing.Wins)
		assert.Empty(t, rank.Scope)
	})

	t.Run("Ties are ordered by player id", func(t *testing.T) {
		c, err := ranking.GlobalRank(ctx, "c")
		require.NoError(t, err)
		d, err := ranking.GlobalRank(ctx, "d")
		require.NoError(t, err)

		assert.Equal(t, 2, c.Position)
		assert.Equal(t, 3, d.Position)
	})

	t.Run("Unknown player", func(t *testing.T) {
		_, err := ranking.GlobalRank(ctx, "z")
		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})

	t.Run("Empty table", func(t *testing.T) {
		_, err := NewRankingService(statsList{}).GlobalRank(ctx, "a")
		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}

func TestRankingService_GroupRank(t *testing.T) {
	ctx := context.Background()
	ranking := NewRankingService(rankingFixture())

	t.Run("Only players with a record in the scope are ranked", func(t *testing.T) {
		rank, err := ranking.GroupRank(ctx, "chat", "c")

		require.NoError(t, err)
		assert.Equal(t, 3, rank.Position)
		assert.Equal(t, 3, rank.Total)
		assert.Equal(t, "chat", rank.Scope)
	})

	t.Run("Scoped wins are used, not global ones", func(t *testing.T) {
		rank, err := ranking.GroupRank(ctx, "chat", "a")

		require.NoError(t, err)
		assert.Equal(t, 1, rank.Position)
		assert.Equal(t, 3, rank.Standing.Wins)
	})

	t.Run("Player without a scoped record", func(t *testing.T) {
		_, err := ranking.GroupRank(ctx, "chat", "b")
		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})

	t.Run("Empty scope is not the global ranking", func(t *testing.T) {
		// Given: "b" leads the global table but has no group record
		// When: a group rank is asked without a group
		rank, err := ranking.GroupRank(ctx, "", "b")

		// Then: nobody is ranked in the empty group
		require.ErrorIs(t, err, apperror.ErrPlayerNotFound)
		assert.Nil(t, rank)
	})
}

func TestRankingService_Consistency(t *testing.T) {
	ctx := context.Background()
	fixture := rankingFixture()
	ranking := NewRankingService(fixture)

	board, err := ranking.Leaderboard(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, board, len(fixture))

	for _, stats := range fixture {
		rank, err := ranking.GlobalRank(ctx, stats.ID)
		require.NoError(t, err)

		// position is within the table and the player there is not behind the next one
		assert.LessOrEqual(t, rank.Position, rank.Total)
		assert.Equal(t, stats.ID, board[rank.Position-1].PlayerID)
		if rank.Position < rank.Total {
			assert.GreaterOrEqual(t, board[rank.Position-1].Wins, board[rank.Position].Wins)
		}
	}
}

func TestRankingService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	ranking := NewRankingService(rankingFixture())

	t.Run("Limit cuts the table", func(t *testing.T) {
		board, err := ranking.Leaderboard(ctx, "", 2)

		require.NoError(t, err)
		require.Len(t, board, 2)
		assert.Equal(t, "b", board[0].PlayerID)
		assert.Equal(t, "c", board[1].PlayerID)
		assert.Equal(t, 2, board[1].Position)
	})

	t.Run("Scoped leaderboard", func(t *testing.T) {
		board, err := ranking.Leaderboard(ctx, "other", 10)

		require.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, "d", board[0].PlayerID)
	})
}
