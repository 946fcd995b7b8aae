package application

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/config"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/router"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
)

func TestOpenScoreRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("File and sqlite backends round trip", func(t *testing.T) {
		dir := t.TempDir()

		for _, backend := range []string{config.ScoresBackendFile, config.ScoresBackendSQLite} {
			conf := &config.Config{Scores: config.Scores{
				Backend:    backend,
				FilePath:   filepath.Join(dir, "scores.json"),
				SQLitePath: filepath.Join(dir, "scores.db"),
			}}

			scoreRepo, closeFn, err := OpenScoreRepository(ctx, conf)
			require.NoError(t, err, backend)

			table := entity.ScoreTable{"1": entity.NewPlayerStats("1", "@alice")}
			require.NoError(t, scoreRepo.Save(ctx, table), backend)

			loaded, err := scoreRepo.Load(ctx)
			require.NoError(t, err, backend)
			assert.Equal(t, table, loaded, backend)

			require.NoError(t, closeFn(), backend)
		}
	})

	t.Run("Unknown backend", func(t *testing.T) {
		conf := &config.Config{Scores: config.Scores{Backend: "mongo"}}

		_, _, err := OpenScoreRepository(ctx, conf)

		require.ErrorIs(t, err, ErrUnknownScoresBackend)
	})
}

func TestNewRouter(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	conf := &config.Config{Scores: config.Scores{
		Backend:  config.ScoresBackendFile,
		FilePath: filepath.Join(t.TempDir(), "scores.json"),
	}}

	scoreRepo, closeFn, err := OpenScoreRepository(ctx, conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	// Given: a router over an empty score file
	eventRouter, err := NewRouter(ctx, logger, scoreRepo)
	require.NoError(t, err)

	// When: bob resigns against alice
	alice := entity.Player{ID: "1", Name: "@alice"}
	bob := entity.Player{ID: "2", Name: "@bob"}
	game := eventRouter.Dispatch(ctx, router.StartGame{Scope: "chat", Size: 3, User: alice, Opponent: &bob})
	require.Empty(t, game.ErrorKind)
	eventRouter.Dispatch(ctx, router.Quit{GameID: game.GameID, User: bob})

	// Then: a router built later from the same file sees the result
	reloaded, err := NewRouter(ctx, logger, scoreRepo)
	require.NoError(t, err)

	rank := reloaded.Dispatch(ctx, router.RankRequest{Kind: usecase.RankGroup, Scope: "chat", PlayerID: alice.ID})
	require.NotNil(t, rank.Rank)
	assert.Equal(t, 1, rank.Rank.Position)
	assert.Equal(t, 1, rank.Rank.Standing.Wins)
}
