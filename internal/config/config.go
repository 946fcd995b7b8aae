package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ScoresBackendFile   = "file"
	ScoresBackendRedis  = "redis"
	ScoresBackendSQLite = "sqlite"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Scores     Scores `yaml:"scores"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Scores - where the score table is loaded from and overwritten to.
type Scores struct {
	Backend    string `yaml:"backend" env:"SCORES_BACKEND" env-default:"file"`
	FilePath   string `yaml:"file-path" env:"SCORES_FILE" env-default:"scores.json"`
	RedisKey   string `yaml:"redis-key" env:"SCORES_REDIS_KEY" env-default:"scores"`
	SQLitePath string `yaml:"sqlite-path" env:"SCORES_SQLITE_PATH" env-default:"scores.db"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path, falling back to environment variables and defaults when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
