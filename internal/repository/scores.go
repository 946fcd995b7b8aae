package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// ScoreRepository - loads and overwrites the whole score table at once.
type ScoreRepository interface {
	Load(ctx context.Context) (entity.ScoreTable, error)
	Save(ctx context.Context, table entity.ScoreTable) error
}

func marshalScores(table entity.ScoreTable) ([]byte, error) {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scores: %w", err)
	}

	return data, nil
}

// unmarshalScores - decodes a stored table and repairs fields older files may lack.
func unmarshalScores(data []byte) (entity.ScoreTable, error) {
	table := entity.ScoreTable{}
	if len(data) == 0 {
		return table, nil
	}

	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
	}

	for id, stats := range table {
		if stats == nil {
			delete(table, id)
			continue
		}

		stats.ID = id
		if stats.Groups == nil {
			stats.Groups = make(map[string]*entity.Record)
		}
	}

	return table, nil
}
