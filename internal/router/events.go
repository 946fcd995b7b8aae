package router

import "github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"

// Event is one inbound interaction. The set of events is closed.
type Event interface {
	event()
}

type StartGame struct {
	Scope    string         `json:"scope"`
	Size     int            `json:"size"`
	User     entity.Player  `json:"user"`
	Opponent *entity.Player `json:"opponent,omitempty"`
}

type JoinGame struct {
	GameID string        `json:"game_id"`
	User   entity.Player `json:"user"`
}

type Move struct {
	GameID string        `json:"game_id"`
	Row    int           `json:"row"`
	Col    int           `json:"col"`
	User   entity.Player `json:"user"`
}

type Quit struct {
	GameID string        `json:"game_id"`
	User   entity.Player `json:"user"`
}

type Rematch struct {
	OldGameID string        `json:"old_game_id"`
	User      entity.Player `json:"user"`
}

// StatsRequest - Scope, when set, also creates the player's group record.
type StatsRequest struct {
	User  entity.Player `json:"user"`
	Scope string        `json:"scope,omitempty"`
}

// RankRequest - Kind is usecase.RankGlobal or usecase.RankGroup.
type RankRequest struct {
	Kind     string `json:"kind"`
	Scope    string `json:"scope,omitempty"`
	PlayerID string `json:"player_id"`
}

type LeaderboardRequest struct {
	Scope string `json:"scope,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

func (StartGame) event()          {}
func (JoinGame) event()           {}
func (Move) event()               {}
func (Quit) event()               {}
func (Rematch) event()            {}
func (StatsRequest) event()       {}
func (RankRequest) event()        {}
func (LeaderboardRequest) event() {}
