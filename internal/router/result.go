package router

import (
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// Result statuses besides the game statuses waiting and ongoing.
const (
	StatusWin         = "win"
	StatusDraw        = "draw"
	StatusResignation = "resignation"
	StatusCancelled   = "cancelled"
	StatusStats       = "stats"
	StatusRank        = "rank"
	StatusLeaderboard = "leaderboard"
	StatusError       = "error"
)

// Result is what a transport renders. Formatting is left to the transport.
type Result struct {
	Status      string              `json:"status"`
	GameID      string              `json:"game_id,omitempty"`
	Board       [][]string          `json:"board,omitempty"`
	Size        int                 `json:"size,omitempty"`
	TurnSymbol  string              `json:"turn_symbol,omitempty"`
	Players     []*entity.Player    `json:"players,omitempty"`
	WinnerName  string              `json:"winner_name,omitempty"`
	Stats       *entity.PlayerStats `json:"stats,omitempty"`
	Rank        *entity.RankInfo    `json:"rank,omitempty"`
	Leaderboard []entity.Standing   `json:"leaderboard,omitempty"`
	ErrorKind   string              `json:"error_kind,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// IsGame - the result carries game state worth pushing to every seated player.
func (that Result) IsGame() bool {
	return that.GameID != ""
}

func gameResult(game *entity.Game) Result {
	result := Result{
		Status:  game.Status,
		GameID:  game.ID,
		Board:   game.Board.Clone().Cells,
		Size:    game.Board.Size,
		Players: game.Players,
	}

	if !game.IsFinished() {
		if game.IsOngoing() {
			result.TurnSymbol = game.CurrentMark()
		}
		return result
	}

	switch game.Result {
	case entity.ResultWin:
		result.Status = StatusWin
	case entity.ResultDraw:
		result.Status = StatusDraw
	case entity.ResultResignation:
		result.Status = StatusResignation
	}

	winner := game.WinnerPlayer()
	if winner != nil {
		result.WinnerName = winner.Name
	} else if game.Result == entity.ResultResignation {
		result.Status = StatusCancelled
	}

	return result
}

func errorResult(err error) Result {
	return Result{
		Status:    StatusError,
		ErrorKind: apperror.Kind(err),
		Error:     err.Error(),
	}
}

// withError - keeps the game state of an operation that finished the game but
// failed afterwards, e.g. when the outcome could not be saved.
func withError(result Result, err error) Result {
	result.ErrorKind = apperror.Kind(err)
	result.Error = err.Error()

	return result
}
