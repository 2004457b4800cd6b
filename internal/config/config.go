package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	HistoryNone   = "none"
	HistoryRedis  = "redis"
	HistorySQLite = "sqlite"
)

var ErrUnknownHistoryDriver = errors.New("unknown history driver")

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"NIMLINES_LOG_LEVEL" env-default:"warn"`
	Game              Game    `yaml:"game"`
	History           History `yaml:"history"`
	Redis             Redis   `yaml:"redis"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"NIMLINES_SQLITE_PATH" env-default:"nimlines.db"`
}

type Game struct {
	// Rows is a preset layout, one line count per row. Empty means the players are asked.
	Rows []int `yaml:"rows" env:"NIMLINES_ROWS" env-separator:","`
}

type History struct {
	Driver string `yaml:"driver" env:"NIMLINES_HISTORY" env-default:"none"`
	Limit  int    `yaml:"limit" env:"NIMLINES_HISTORY_LIMIT" env-default:"5"`
}

type Redis struct {
	Host string `yaml:"host" env:"NIMLINES_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"NIMLINES_REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file, or from the environment when the file does not exist.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	if err = config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	switch that.History.Driver {
	case HistoryNone, HistoryRedis, HistorySQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHistoryDriver, that.History.Driver)
	}

	for i, size := range that.Game.Rows {
		if size <= 0 {
			return fmt.Errorf("game.rows[%d] must be positive, got %d", i, size)
		}
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
