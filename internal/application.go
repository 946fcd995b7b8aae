package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/config"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/router"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/service"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-chatbot/transport/rest"
	"github.com/rocketscienceinc/tictactoe-chatbot/transport/websocket"
)

const shutdownTimeout = 5 * time.Second

var ErrUnknownScoresBackend = errors.New("unknown scores backend")

// OpenScoreRepository - opens the configured score backend. closeFn releases its connection.
func OpenScoreRepository(ctx context.Context, conf *config.Config) (repository.ScoreRepository, func() error, error) {
	switch conf.Scores.Backend {
	case config.ScoresBackendFile, "":
		return repository.NewFileScoreRepository(conf.Scores.FilePath), func() error { return nil }, nil

	case config.ScoresBackendRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}
		return repository.NewRedisScoreRepository(redisStorage.Connection, conf.Scores.RedisKey), redisStorage.Close, nil

	case config.ScoresBackendSQLite:
		sqliteStorage, err := sqlite.New(conf.Scores.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}
		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}
		return repository.NewSQLiteScoreRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownScoresBackend, conf.Scores.Backend)
	}
}

// NewRouter - wires the game registry and the statistics behind one router.
func NewRouter(ctx context.Context, logger *slog.Logger, scoreRepo repository.ScoreRepository) (*router.Router, error) {
	scoreService, err := service.NewScoreService(ctx, logger, scoreRepo)
	if err != nil {
		return nil, fmt.Errorf("could not init score service: %w", err)
	}

	rankingService := service.NewRankingService(scoreService)

	gameManager := usecase.NewGameManager(logger, repository.NewGameRepository(), scoreService)
	statsUseCase := usecase.NewStatsUseCase(scoreService, rankingService)

	return router.New(logger, gameManager, statsUseCase), nil
}

// RunApp - runs the application until a signal arrives or a server fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scoreRepo, closeScores, err := OpenScoreRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeScores(); err != nil {
			log.Error("could not close score storage", "error", err)
		}
	}()

	eventRouter, err := NewRouter(ctx, logger, scoreRepo)
	if err != nil {
		return err
	}

	restServer := rest.New(logger, eventRouter)
	wsServer := websocket.New(logger, eventRouter)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- restServer.Start(conf.HTTPPort)
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- wsServer.Start(conf.SocketPort)
	}()

	var runErr error

	select {
	case err = <-httpErrCh:
		runErr = fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		runErr = fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = restServer.Shutdown(shutdownCtx); err != nil {
		log.Error("could not stop HTTP server", "error", err)
	}
	if err = wsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("could not stop WebSocket server", "error", err)
	}

	return runErr
}
