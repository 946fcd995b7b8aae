package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &Player{ID: "1", Name: "@alice"}
	bob   = &Player{ID: "2", Name: "@bob"}
)

func newOngoingGame(t *testing.T, size int) *Game {
	t.Helper()

	game, err := NewGame("123", "chat", size, alice)
	require.NoError(t, err)
	require.NoError(t, game.AddPlayer(bob))

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Creates a waiting game with the starter in seat 0", func(t *testing.T) {
		// When: a 6x6 game is created
		game, err := NewGame("123", "chat", 6, alice)
		require.NoError(t, err)

		// Then: it waits for an opponent, needs four in a row and X is the starter
		expectedGame := &Game{
			ID:        "123",
			Scope:     "chat",
			Board:     NewBoard(6),
			RunLength: 4,
			Players:   []*Player{alice},
			Turn:      0,
			Status:    StatusWaiting,
		}
		require.Equal(t, expectedGame, game)
		assert.Equal(t, PlayerX, game.CurrentMark())
	})

	t.Run("Unsupported size is rejected", func(t *testing.T) {
		game, err := NewGame("123", "chat", 5, alice)

		require.ErrorIs(t, err, apperror.ErrUnsupportedSize)
		assert.Nil(t, game)
	})
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_AddPlayer(t *testing.T) {
	t.Run("Second player starts the game", func(t *testing.T) {
		game, err := NewGame("123", "chat", 3, alice)
		require.NoError(t, err)

		require.NoError(t, game.AddPlayer(bob))

		assert.True(t, game.IsOngoing())
		assert.Equal(t, []*Player{alice, bob}, game.Players)
	})

	t.Run("Joining twice is a no-op", func(t *testing.T) {
		game, err := NewGame("123", "chat", 3, alice)
		require.NoError(t, err)

		require.NoError(t, game.AddPlayer(&Player{ID: alice.ID, Name: "renamed"}))

		assert.True(t, game.IsWaiting())
		assert.Equal(t, []*Player{alice}, game.Players)
	})

	t.Run("Third player is rejected", func(t *testing.T) {
		game := newOngoingGame(t, 3)

		err := game.AddPlayer(&Player{ID: "3"})

		require.ErrorIs(t, err, apperror.ErrGameFull)
		assert.Len(t, game.Players, 2)
	})
}

func TestGame_MakeTurn(t *testing.T) {
	t.Run("Successful turn toggles the turn index", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame(t, 3)

		// When: X moves
		err := game.MakeTurn(alice.ID, 1, 1)
		require.NoError(t, err)

		// Then: the mark is placed and O is next
		assert.Equal(t, PlayerX, game.Board.Cells[1][1])
		assert.Equal(t, 1, game.Turn)
		assert.Equal(t, PlayerO, game.CurrentMark())
		assert.True(t, game.IsOngoing())
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		game := newOngoingGame(t, 3)
		before := game.Board.Clone()

		err := game.MakeTurn(bob.ID, 0, 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, game.Board)
		assert.Equal(t, 0, game.Turn)
	})

	t.Run("Error on cell already occupied keeps the turn", func(t *testing.T) {
		game := newOngoingGame(t, 3)
		require.NoError(t, game.MakeTurn(alice.ID, 0, 0))
		before := game.Board.Clone()

		err := game.MakeTurn(bob.ID, 0, 0)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, game.Board)
		assert.Equal(t, 1, game.Turn)
	})

	t.Run("Error on move while waiting for an opponent", func(t *testing.T) {
		game, err := NewGame("123", "chat", 3, alice)
		require.NoError(t, err)

		err = game.MakeTurn(alice.ID, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		game := newOngoingGame(t, 3)
		moves := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}}
		for i, mv := range moves {
			player := alice
			if i%2 == 1 {
				player = bob
			}
			require.NoError(t, game.MakeTurn(player.ID, mv[0], mv[1]))
		}

		assert.True(t, game.IsFinished())
		assert.Equal(t, ResultWin, game.Result)
		assert.Equal(t, PlayerX, game.Winner)
		assert.Equal(t, alice, game.WinnerPlayer())
		assert.Equal(t, bob, game.LoserPlayer())
		assert.Equal(t, 0, game.Turn)

		err := game.MakeTurn(bob.ID, 2, 2)
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Win on the last empty cell is a win, not a draw", func(t *testing.T) {
		// Given: X to play the last cell, which completes the left column
		game := newOngoingGame(t, 3)
		game.Board = boardFrom(t, "XOX", "XOO", ".XO")

		// When: X plays (2,0)
		require.NoError(t, game.MakeTurn(alice.ID, 2, 0))

		// Then: the full board is reported as a win
		assert.Equal(t, ResultWin, game.Result)
		assert.Equal(t, PlayerX, game.Winner)
	})

	t.Run("Filling the board without a run is a draw", func(t *testing.T) {
		game := newOngoingGame(t, 3)
		game.Board = boardFrom(t, "XOX", "XOO", "OX.")

		require.NoError(t, game.MakeTurn(alice.ID, 2, 2))

		assert.True(t, game.IsFinished())
		assert.Equal(t, ResultDraw, game.Result)
		assert.Equal(t, PlayerTie, game.Winner)
		assert.Nil(t, game.WinnerPlayer())
		assert.Nil(t, game.LoserPlayer())
	})
}

func TestGame_Resign(t *testing.T) {
	t.Run("Opponent wins by resignation", func(t *testing.T) {
		game := newOngoingGame(t, 3)

		require.NoError(t, game.Resign(alice.ID))

		assert.True(t, game.IsFinished())
		assert.Equal(t, ResultResignation, game.Result)
		assert.Equal(t, bob, game.WinnerPlayer())
		assert.Equal(t, alice, game.LoserPlayer())
	})

	t.Run("Non participant cannot resign", func(t *testing.T) {
		game := newOngoingGame(t, 3)

		err := game.Resign("3")

		require.ErrorIs(t, err, apperror.ErrNotAParticipant)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Resigning a waiting game has no winner", func(t *testing.T) {
		game, err := NewGame("123", "chat", 3, alice)
		require.NoError(t, err)

		require.NoError(t, game.Resign(alice.ID))

		assert.True(t, game.IsFinished())
		assert.Nil(t, game.WinnerPlayer())
	})
}
