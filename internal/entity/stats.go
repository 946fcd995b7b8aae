package entity

// Record - win/loss/draw counters.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (that Record) Played() int {
	return that.Wins + that.Losses + that.Draws
}

// PlayerStats - global counters plus per-group counters keyed by scope.
// Global and group counters are separate accumulators bumped by the same outcome.
type PlayerStats struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Record
	Groups map[string]*Record `json:"groups"`
}

func NewPlayerStats(id, name string) *PlayerStats {
	return &PlayerStats{
		ID:     id,
		Name:   name,
		Groups: make(map[string]*Record),
	}
}

// Group - returns the scoped record, nil when the player never played in scope.
func (that *PlayerStats) Group(scope string) *Record {
	return that.Groups[scope]
}

// EnsureGroup - returns the scoped record, creating a zeroed one if missing.
func (that *PlayerStats) EnsureGroup(scope string) *Record {
	if that.Groups == nil {
		that.Groups = make(map[string]*Record)
	}

	record, ok := that.Groups[scope]
	if !ok {
		record = &Record{}
		that.Groups[scope] = record
	}

	return record
}

// Clone - deep copy, safe to hand out of the store.
func (that *PlayerStats) Clone() *PlayerStats {
	clone := &PlayerStats{
		ID:     that.ID,
		Name:   that.Name,
		Record: that.Record,
		Groups: make(map[string]*Record, len(that.Groups)),
	}

	for scope, record := range that.Groups {
		r := *record
		clone.Groups[scope] = &r
	}

	return clone
}

// ScoreTable - the whole persisted score table keyed by player id.
type ScoreTable map[string]*PlayerStats
