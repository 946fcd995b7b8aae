package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerTie = "-"
)

const (
	ResultWin         = "win"
	ResultDraw        = "draw"
	ResultResignation = "resignation"
)

const seats = 2

var ErrUnknownGameStatus = errors.New("unknown game status")

// Player is a seat holder. Name is a snapshot taken when the player sat down.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Game struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Board     *Board    `json:"board"`
	RunLength int       `json:"run_length"`
	Players   []*Player `json:"players"`
	Turn      int       `json:"turn"`
	Status    string    `json:"status"`
	Result    string    `json:"result,omitempty"`
	Winner    string    `json:"winner,omitempty"`
}

// NewGame - creates a waiting game with starter in seat 0.
func NewGame(id, scope string, size int, starter *Player) (*Game, error) {
	needed, err := RunLength(size)
	if err != nil {
		return nil, err
	}

	return &Game{
		ID:        id,
		Scope:     scope,
		Board:     NewBoard(size),
		RunLength: needed,
		Players:   []*Player{starter},
		Turn:      0,
		Status:    StatusWaiting,
	}, nil
}

// MarkForSeat - seat 0 always plays X.
func MarkForSeat(seat int) string {
	if seat == 0 {
		return PlayerX
	}
	return PlayerO
}

func (that *Game) CurrentMark() string {
	return MarkForSeat(that.Turn)
}

// CurrentPlayer - the player whose turn it is, nil while waiting for an opponent.
func (that *Game) CurrentPlayer() *Player {
	if that.Turn >= len(that.Players) {
		return nil
	}
	return that.Players[that.Turn]
}

// Seat - returns the seat index of playerID or -1.
func (that *Game) Seat(playerID string) int {
	for seat, player := range that.Players {
		if player.ID == playerID {
			return seat
		}
	}
	return -1
}

func (that *Game) HasPlayer(playerID string) bool {
	return that.Seat(playerID) >= 0
}

// Opponent - the other seated player, nil if nobody else is seated.
func (that *Game) Opponent(playerID string) *Player {
	for _, player := range that.Players {
		if player.ID != playerID {
			return player
		}
	}
	return nil
}

// AddPlayer - seats player. Re-joining is a no-op; the second seat starts the game.
func (that *Game) AddPlayer(player *Player) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.HasPlayer(player.ID) {
		return nil
	}

	if len(that.Players) >= seats {
		return fmt.Errorf("%w: game id %s", apperror.ErrGameFull, that.ID)
	}

	that.Players = append(that.Players, player)
	if len(that.Players) == seats {
		that.Status = StatusOngoing
	}

	return nil
}

// MakeTurn - places the current mark for playerID and resolves win, draw or next turn.
func (that *Game) MakeTurn(playerID string, row, col int) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	current := that.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return apperror.ErrNotYourTurn
	}

	mark := that.CurrentMark()
	if err := that.Board.Place(row, col, mark); err != nil {
		return err
	}

	that.UpdateGameState(mark)

	return nil
}

// UpdateGameState - win takes precedence over a full board.
func (that *Game) UpdateGameState(lastMark string) {
	switch {
	case that.Board.CheckWin(lastMark, that.RunLength):
		that.Status = StatusFinished
		that.Result = ResultWin
		that.Winner = lastMark
	case that.Board.CheckDraw():
		that.Status = StatusFinished
		that.Result = ResultDraw
		that.Winner = PlayerTie
	default:
		that.Turn = 1 - that.Turn
	}
}

// Resign - ends the game in favour of the opponent of playerID.
func (that *Game) Resign(playerID string) error {
	seat := that.Seat(playerID)
	if seat < 0 {
		return fmt.Errorf("%w: %s", apperror.ErrNotAParticipant, playerID)
	}

	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	that.Status = StatusFinished
	that.Result = ResultResignation
	if len(that.Players) == seats {
		that.Winner = MarkForSeat(1 - seat)
	}

	return nil
}

// WinnerPlayer - the player holding the winning mark, nil for draws and unfinished games.
func (that *Game) WinnerPlayer() *Player {
	for seat, player := range that.Players {
		if that.Winner == MarkForSeat(seat) {
			return player
		}
	}
	return nil
}

// LoserPlayer - the other player of a decided game.
func (that *Game) LoserPlayer() *Player {
	winner := that.WinnerPlayer()
	if winner == nil {
		return nil
	}
	return that.Opponent(winner.ID)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
