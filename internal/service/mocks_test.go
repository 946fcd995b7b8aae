package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

type mockScoreRepo struct {
	mock.Mock
}

func (that *mockScoreRepo) Load(ctx context.Context) (entity.ScoreTable, error) {
	args := that.Called(ctx)

	table, _ := args.Get(0).(entity.ScoreTable)
	return table, args.Error(1)
}

func (that *mockScoreRepo) Save(ctx context.Context, table entity.ScoreTable) error {
	args := that.Called(ctx, table)
	return args.Error(0)
}

// memScoreRepo - keeps the last saved table, counting saves.
type memScoreRepo struct {
	table entity.ScoreTable
	saves int
}

func (that *memScoreRepo) Load(_ context.Context) (entity.ScoreTable, error) {
	return that.table, nil
}

func (that *memScoreRepo) Save(_ context.Context, table entity.ScoreTable) error {
	that.table = table
	that.saves++
	return nil
}
