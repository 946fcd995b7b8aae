package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameFull          = errors.New("game already has two players")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrIllegalMove       = errors.New("cell is out of the board")
	ErrNotAParticipant   = errors.New("user is not a participant of the game")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrUnsupportedSize   = errors.New("unsupported board size")
	ErrUnknownRankKind   = errors.New("unknown rank kind")
	ErrUnknownEventShape = errors.New("unknown event")
	ErrBadPayload        = errors.New("bad payload")
	ErrSelfPlay          = errors.New("opponent is the starter")
)

// Kind values are the stable error names reported to transports.
const (
	KindGameNotFound    = "GameNotFound"
	KindGameFull        = "GameFull"
	KindGameNotStarted  = "GameNotStarted"
	KindNotYourTurn     = "NotYourTurn"
	KindCellOccupied    = "CellOccupied"
	KindIllegalMove     = "IllegalMove"
	KindNotAParticipant = "NotAParticipant"
	KindPlayerNotFound  = "PlayerNotFound"
	KindUnsupportedSize = "UnsupportedSize"
	KindBadRequest      = "BadRequest"
	KindInternal        = "Internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrGameNotFound, KindGameNotFound},
	{ErrGameFinished, KindGameNotFound},
	{ErrGameFull, KindGameFull},
	{ErrGameIsNotStarted, KindGameNotStarted},
	{ErrNotYourTurn, KindNotYourTurn},
	{ErrCellOccupied, KindCellOccupied},
	{ErrIllegalMove, KindIllegalMove},
	{ErrNotAParticipant, KindNotAParticipant},
	{ErrPlayerNotFound, KindPlayerNotFound},
	{ErrUnsupportedSize, KindUnsupportedSize},
	{ErrUnknownRankKind, KindBadRequest},
	{ErrUnknownEventShape, KindBadRequest},
	{ErrBadPayload, KindBadRequest},
	{ErrSelfPlay, KindBadRequest},
}

// Kind - maps an error chain to its taxonomy name. Nil maps to "".
func Kind(err error) string {
	if err == nil {
		return ""
	}

	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindInternal
}
