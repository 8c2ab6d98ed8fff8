package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Sensor modes.
const (
	SensorWebsocket = "websocket"
	SensorMouse     = "mouse"
)

// Config holds runtime settings read from the environment.
type Config struct {
	SensorMode string        `env:"TOUCHGAME_SENSOR"      envDefault:"websocket"`
	SensorAddr string        `env:"TOUCHGAME_SENSOR_ADDR" envDefault:"127.0.0.1:8765"`
	SampleTTL  time.Duration `env:"TOUCHGAME_SAMPLE_TTL"  envDefault:"500ms"`
	ScoresPath string        `env:"TOUCHGAME_SCORES_DB"   envDefault:"touchgame.db"`
	Muted      bool          `env:"TOUCHGAME_MUTE"`
	Seed       uint64        `env:"TOUCHGAME_SEED"`
	Title      string        `env:"TOUCHGAME_TITLE"       envDefault:"Touch Targets - point at 1, 2, 3... | R: restart, Enter: next, Esc/Q: quit"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse parses the process environment into a Config and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SensorMode {
	case SensorWebsocket, SensorMouse:
	default:
		return fmt.Errorf("unknown sensor mode %q", c.SensorMode)
	}
	if c.SensorMode == SensorWebsocket && c.SensorAddr == "" {
		return errors.New("sensor address is empty")
	}
	if c.SampleTTL < 0 {
		return fmt.Errorf("negative sample ttl %v", c.SampleTTL)
	}
	return nil
}

// LogSummary prints the effective configuration.
func (c Config) LogSummary() {
	log.Printf("config: sensor=%s addr=%s ttl=%v scores=%s muted=%t seed=%d",
		c.SensorMode, c.SensorAddr, c.SampleTTL, c.ScoresPath, c.Muted, c.Seed)
}
