package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/pkg"
)

// maxSeatings - finished games remembered for rematch; oldest are forgotten first.
const maxSeatings = 1024

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

type scoreRecorder interface {
	RecordOutcome(ctx context.Context, winner, loser *entity.Player, scope string, isDraw bool) error
}

// seating - what a rematch needs from a finished game.
type seating struct {
	scope   string
	size    int
	players [2]*entity.Player
}

// GameManager owns every live game. It is not safe for concurrent use;
// the caller processes one event at a time.
type GameManager struct {
	logger *slog.Logger

	gameRepo gameRepo
	scores   scoreRecorder

	seatings     map[string]seating
	seatingOrder []string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, scores scoreRecorder) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		scores:   scores,
		seatings: make(map[string]seating),
	}
}

// StartGame - creates a game in scope. Without an opponent it waits for a join;
// with one it starts right away, starter playing X.
func (that *GameManager) StartGame(ctx context.Context, scope string, size int, starter, opponent *entity.Player) (*entity.Game, error) {
	if opponent != nil && opponent.ID == starter.ID {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSelfPlay, starter.ID)
	}

	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game, err := entity.NewGame(gameID, scope, size, starter)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if opponent != nil {
		if err = game.AddPlayer(opponent); err != nil {
			return nil, fmt.Errorf("failed to seat opponent: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "scope", scope, "size", size, "status", game.Status)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}

	return game, nil
}

// JoinGame - seats user in a waiting game. Joining a game you already sit in is a no-op.
func (that *GameManager) JoinGame(ctx context.Context, gameID string, user *entity.Player) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.AddPlayer(user); err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("player joined", "gameID", game.ID, "playerID", user.ID, "status", game.Status)

	return game, nil
}

// MakeMove - plays the current turn for user. A winning or drawing move records
// the outcome and removes the game; the finished game is still returned.
func (that *GameManager) MakeMove(ctx context.Context, gameID, userID string, row, col int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.MakeTurn(userID, row, col); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if game.IsFinished() {
		return game, that.finishGame(ctx, game)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// QuitGame - user resigns; a seated opponent wins. A waiting game is just cancelled.
func (that *GameManager) QuitGame(ctx context.Context, gameID, userID string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.Resign(userID); err != nil {
		return nil, fmt.Errorf("failed to quit game: %w", err)
	}

	return game, that.finishGame(ctx, game)
}

// Rematch - starts a new game with the seating of a finished one.
func (that *GameManager) Rematch(ctx context.Context, oldGameID, userID string) (*entity.Game, error) {
	old, ok := that.seatings[oldGameID]
	if !ok {
		return nil, fmt.Errorf("no finished game %s: %w", oldGameID, apperror.ErrGameNotFound)
	}

	if old.players[0].ID != userID && old.players[1].ID != userID {
		return nil, fmt.Errorf("%w: %s", apperror.ErrNotAParticipant, userID)
	}

	game, err := that.StartGame(ctx, old.scope, old.size, old.players[0], old.players[1])
	if err != nil {
		return nil, fmt.Errorf("failed to start rematch: %w", err)
	}

	that.forgetSeating(oldGameID)

	return game, nil
}

// finishGame - records the outcome once, then drops the game from the registry.
// The game is removed even if recording fails.
func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	recordErr := that.recordOutcome(ctx, game)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	if len(game.Players) == 2 {
		that.rememberSeating(game)
	}

	if recordErr != nil {
		log.Error("failed to record outcome", "error", recordErr)
		return fmt.Errorf("failed to record outcome: %w", recordErr)
	}

	log.Debug("final board", "board", game.Board.String())
	log.Info("game finished", "result", game.Result, "winner", game.Winner, "liveGames", that.gameRepo.Count(ctx))

	return nil
}

func (that *GameManager) recordOutcome(ctx context.Context, game *entity.Game) error {
	switch game.Result {
	case entity.ResultDraw:
		return that.scores.RecordOutcome(ctx, game.Players[0], game.Players[1], game.Scope, true)
	case entity.ResultWin, entity.ResultResignation:
		winner := game.WinnerPlayer()
		if winner == nil {
			// resigned before an opponent sat down
			return nil
		}
		return that.scores.RecordOutcome(ctx, winner, game.LoserPlayer(), game.Scope, false)
	default:
		return nil
	}
}

func (that *GameManager) rememberSeating(game *entity.Game) {
	if len(that.seatingOrder) >= maxSeatings {
		that.forgetSeating(that.seatingOrder[0])
	}

	that.seatings[game.ID] = seating{
		scope:   game.Scope,
		size:    game.Board.Size,
		players: [2]*entity.Player{game.Players[0], game.Players[1]},
	}
	that.seatingOrder = append(that.seatingOrder, game.ID)
}

func (that *GameManager) forgetSeating(gameID string) {
	delete(that.seatings, gameID)

	for i, id := range that.seatingOrder {
		if id == gameID {
			that.seatingOrder = append(that.seatingOrder[:i], that.seatingOrder[i+1:]...)
			break
		}
	}
}
