package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-nxn/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-nxn/internal/entity"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Board    Board  `yaml:"board"`
	Bot      Bot    `yaml:"bot"`
	Redis    Redis  `yaml:"redis"`
}

// Board bounds the sizes a player can switch between.
type Board struct {
	DefaultSize int `yaml:"default-size" env:"BOARD_DEFAULT_SIZE" env-default:"3"`
	MinSize     int `yaml:"min-size" env:"BOARD_MIN_SIZE" env-default:"3"`
	MaxSize     int `yaml:"max-size" env:"BOARD_MAX_SIZE" env-default:"5"`
}

type Bot struct {
	Delay       time.Duration `yaml:"delay" env:"BOT_DELAY" env-default:"750ms"`
	HumanSymbol string        `yaml:"human-symbol" env:"BOT_HUMAN_SYMBOL" env-default:"X"`
}

type Redis struct {
	Enabled    bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host       string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"REDIS_SESSION_TTL" env-default:"24h"`
}

// Load reads the config file, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	if that.Board.MinSize < 1 || that.Board.MaxSize < that.Board.MinSize {
		return fmt.Errorf("%w: size range [%d, %d]", apperror.ErrInvalidSize, that.Board.MinSize, that.Board.MaxSize)
	}

	if that.Board.DefaultSize < that.Board.MinSize || that.Board.DefaultSize > that.Board.MaxSize {
		return fmt.Errorf("%w: default size %d outside [%d, %d]",
			apperror.ErrInvalidSize, that.Board.DefaultSize, that.Board.MinSize, that.Board.MaxSize)
	}

	if _, err := entity.NewBotConfig(entity.Symbol(that.Bot.HumanSymbol)); err != nil {
		return err
	}

	if that.Bot.Delay < 0 {
		return fmt.Errorf("bot delay must not be negative: %s", that.Bot.Delay)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
