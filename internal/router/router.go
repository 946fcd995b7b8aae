package router

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

type gameManager interface {
	StartGame(ctx context.Context, scope string, size int, starter, opponent *entity.Player) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID string, user *entity.Player) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID, userID string, row, col int) (*entity.Game, error)
	QuitGame(ctx context.Context, gameID, userID string) (*entity.Game, error)
	Rematch(ctx context.Context, oldGameID, userID string) (*entity.Game, error)
}

type statsUseCase interface {
	Stats(ctx context.Context, user *entity.Player, scope string) (*entity.PlayerStats, error)
	Rank(ctx context.Context, kind, scope, playerID string) (*entity.RankInfo, error)
	Leaderboard(ctx context.Context, scope string, limit int) ([]entity.Standing, error)
}

// Router hands events to the game registry or the statistics, one at a time.
type Router struct {
	logger *slog.Logger

	mu    sync.Mutex
	games gameManager
	stats statsUseCase
}

func New(logger *slog.Logger, games gameManager, stats statsUseCase) *Router {
	return &Router{
		logger: logger.With("component", "router"),
		games:  games,
		stats:  stats,
	}
}

// Dispatch - handles event to completion before the next one is accepted.
// Failures are reported in the result, never returned.
func (that *Router) Dispatch(ctx context.Context, event Event) Result {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Dispatch", "event", fmt.Sprintf("%T", event))

	result, err := that.dispatch(ctx, event)
	if err != nil {
		log.Warn("event failed", "error", err, "kind", apperror.Kind(err))

		if result.IsGame() {
			return withError(result, err)
		}
		return errorResult(err)
	}

	log.Debug("event handled", "status", result.Status, "gameID", result.GameID)

	return result
}

func (that *Router) dispatch(ctx context.Context, event Event) (Result, error) {
	switch e := event.(type) {
	case StartGame:
		if err := requireUser(e.User); err != nil {
			return Result{}, err
		}
		if e.Opponent != nil {
			if err := requireUser(*e.Opponent); err != nil {
				return Result{}, err
			}
		}
		return that.game(that.games.StartGame(ctx, e.Scope, e.Size, &e.User, e.Opponent))

	case JoinGame:
		if err := requireUser(e.User); err != nil {
			return Result{}, err
		}
		return that.game(that.games.JoinGame(ctx, e.GameID, &e.User))

	case Move:
		if err := requireUser(e.User); err != nil {
			return Result{}, err
		}
		return that.game(that.games.MakeMove(ctx, e.GameID, e.User.ID, e.Row, e.Col))

	case Quit:
		if err := requireUser(e.User); err != nil {
			return Result{}, err
		}
		return that.game(that.games.QuitGame(ctx, e.GameID, e.User.ID))

	case Rematch:
		if err := requireUser(e.User); err != nil {
			return Result{}, err
		}
		return that.game(that.games.Rematch(ctx, e.OldGameID, e.User.ID))

	case StatsRequest:
		if err := requireUser(e.User); err != nil {
			return Result{}, err
		}
		stats, err := that.stats.Stats(ctx, &e.User, e.Scope)
		if err != nil {
			return Result{}, err
		}
		return Result{Status: StatusStats, Stats: stats}, nil

	case RankRequest:
		rank, err := that.stats.Rank(ctx, e.Kind, e.Scope, e.PlayerID)
		if err != nil {
			return Result{}, err
		}
		return Result{Status: StatusRank, Rank: rank}, nil

	case LeaderboardRequest:
		standings, err := that.stats.Leaderboard(ctx, e.Scope, e.Limit)
		if err != nil {
			return Result{}, err
		}
		return Result{Status: StatusLeaderboard, Leaderboard: standings}, nil

	default:
		return Result{}, fmt.Errorf("%w: %T", apperror.ErrUnknownEventShape, event)
	}
}

// game - a finished game is reported even when recording its outcome failed.
func (that *Router) game(game *entity.Game, err error) (Result, error) {
	if game == nil {
		return Result{}, err
	}

	return gameResult(game), err
}

func requireUser(user entity.Player) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", apperror.ErrBadPayload)
	}

	return nil
}
