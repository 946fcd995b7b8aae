package router

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
)

// Actions of the {"action": ..., "payload": ...} envelope shared by the transports.
const (
	ActionNewGame     = "game:new"
	ActionJoinGame    = "game:join"
	ActionTurn        = "game:turn"
	ActionLeave       = "game:leave"
	ActionRematch     = "game:rematch"
	ActionStats       = "stats"
	ActionRank        = "rank"
	ActionLeaderboard = "leaderboard"
)

// DecodeEvent - the action alone decides the payload shape.
func DecodeEvent(action string, payload json.RawMessage) (Event, error) {
	switch action {
	case ActionNewGame:
		return decode[StartGame](action, payload)
	case ActionJoinGame:
		return decode[JoinGame](action, payload)
	case ActionTurn:
		return decode[Move](action, payload)
	case ActionLeave:
		return decode[Quit](action, payload)
	case ActionRematch:
		return decode[Rematch](action, payload)
	case ActionStats:
		return decode[StatsRequest](action, payload)
	case ActionRank:
		return decode[RankRequest](action, payload)
	case ActionLeaderboard:
		return decode[LeaderboardRequest](action, payload)
	default:
		return nil, fmt.Errorf("%w: action %q", apperror.ErrUnknownEventShape, action)
	}
}

func decode[T Event](action string, payload json.RawMessage) (Event, error) {
	var event T

	if len(payload) == 0 {
		return event, nil
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", apperror.ErrBadPayload, action, err)
	}

	return event, nil
}

// SenderID - the player an event comes from, empty for read-only lookups by id.
func SenderID(event Event) string {
	switch e := event.(type) {
	case StartGame:
		return e.User.ID
	case JoinGame:
		return e.User.ID
	case Move:
		return e.User.ID
	case Quit:
		return e.User.ID
	case Rematch:
		return e.User.ID
	case StatsRequest:
		return e.User.ID
	default:
		return ""
	}
}
