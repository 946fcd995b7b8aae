package entity

// Standing - one row of an ordered ranking.
type Standing struct {
	Position int    `json:"position"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Record
}

// RankInfo - a player's 1-based position among Total ranked players.
// Scope is empty for the global ranking.
type RankInfo struct {
	Scope    string   `json:"scope,omitempty"`
	Position int      `json:"position"`
	Total    int      `json:"total"`
	Standing Standing `json:"standing"`
}
