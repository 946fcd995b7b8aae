package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// scoresRowID - the table lives in a single row.
const scoresRowID = 1

type sqliteScores struct {
	conn *sql.DB
}

// NewSQLiteScoreRepository - expects the scores table created by sqlite.Storage.Init.
func NewSQLiteScoreRepository(conn *sql.DB) ScoreRepository {
	return &sqliteScores{
		conn: conn,
	}
}

func (that *sqliteScores) Load(ctx context.Context) (entity.ScoreTable, error) {
	query := `SELECT data FROM scores WHERE id = ?`

	var data []byte

	err := that.conn.QueryRowContext(ctx, query, scoresRowID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ScoreTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't load scores: %w", err)
	}

	return unmarshalScores(data)
}

func (that *sqliteScores) Save(ctx context.Context, table entity.ScoreTable) error {
	data, err := marshalScores(table)
	if err != nil {
		return err
	}

	query := `INSERT OR REPLACE INTO scores (id, data) VALUES (?, ?)`

	if _, err = that.conn.ExecContext(ctx, query, scoresRowID, string(data)); err != nil {
		return fmt.Errorf("can't save scores: %w", err)
	}

	return nil
}
