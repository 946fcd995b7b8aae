package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

type fileScores struct {
	path string
}

// NewFileScoreRepository - JSON file rewritten in full on every Save.
func NewFileScoreRepository(path string) ScoreRepository {
	return &fileScores{
		path: path,
	}
}

func (that *fileScores) Load(_ context.Context) (entity.ScoreTable, error) {
	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.ScoreTable{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read scores file: %w", err)
	}

	return unmarshalScores(data)
}

func (that *fileScores) Save(_ context.Context, table entity.ScoreTable) error {
	data, err := marshalScores(table)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(that.path), filepath.Base(that.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp scores file: %w", err)
	}

	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write scores file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close scores file: %w", err)
	}

	if err = os.Rename(tmp.Name(), that.path); err != nil {
		return fmt.Errorf("failed to replace scores file: %w", err)
	}

	return nil
}
