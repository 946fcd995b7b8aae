package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/config"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const defaultConfigPath = "config.yml"

// RootCmd returns the tictactoe command. Without a subcommand it serves.
func RootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Chat tic-tac-toe server with per-group statistics",
		Long: fmt.Sprintf(`tictactoe runs %s tic-tac-toe games for chat transports
and keeps win/loss/draw statistics globally and per chat group.`, sizesHelp()),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to config file (default ./config.yml, environment only if missing)")

	cmd.AddCommand(ServeCmd(&configPath))
	cmd.AddCommand(StatsCmd(&configPath))

	return cmd
}

// loadConfig - an explicit path must exist; the default one is optional.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	if _, err := os.Stat(defaultConfigPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.Load("")
		}
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	return config.Load(defaultConfigPath)
}

// initLogger - JSON logs on stdout at the configured level, info when unknown.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// sizesHelp - "3x3, 6x6 and 8x8" for the supported board sizes.
func sizesHelp() string {
	sizes := entity.SupportedSizes()
	names := make([]string, 0, len(sizes))
	for _, size := range sizes {
		names = append(names, fmt.Sprintf("%dx%d", size, size))
	}

	if len(names) < 2 {
		return strings.Join(names, "")
	}

	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
