package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jsphweid/fretnot/chord"
	"github.com/jsphweid/fretnot/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Weights chord.Weights `yaml:"weights"`
	Engine  EngineConfig  `yaml:"engine"`
	Server  ServerConfig  `yaml:"server"`
	Coach   CoachConfig   `yaml:"coach"`
}

type EngineConfig struct {
	// highest fret the voicing search may use
	MaxFret int `yaml:"max_fret"`
	// how many labels hosts display
	TopN int `yaml:"top_n"`
}

type ServerConfig struct {
	Addr       string `yaml:"addr"`
	CORSOrigin string `yaml:"cors_origin"`
}

type CoachConfig struct {
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
	Backoff     time.Duration `yaml:"backoff"`
	Temperature float32       `yaml:"temperature"`
}

func DefaultConfig() *Config {
	return &Config{
		Weights: chord.DefaultWeights(),
		Engine: EngineConfig{
			MaxFret: constants.MaxFret,
			TopN:    constants.DefaultTopN,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			CORSOrigin: "*",
		},
		Coach: CoachConfig{
			Model:       constants.DefaultGeminiModel,
			Timeout:     30 * time.Second,
			MaxRetries:  3,
			Backoff:     500 * time.Millisecond,
			Temperature: 0.65,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment variables win over both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if os.Getenv("FRETNOT_ADDR") != "" {
		c.Server.Addr = constants.GetAddr()
	}
	if os.Getenv("CORS_ORIGIN") != "" {
		c.Server.CORSOrigin = constants.GetCORSOrigin()
	}
	if key := constants.GetGeminiAPIKey(); key != "" {
		c.Coach.APIKey = key
	}
	if os.Getenv("GEMINI_MODEL") != "" {
		c.Coach.Model = constants.GetGeminiModel()
	}
}

// Validate rejects settings the engine cannot work with. Every pitch class
// must be reachable on every string, so the window spans at least 12 frets,
// and no fret past the neck's last one may be used.
func (c *Config) Validate() error {
	if c.Engine.MaxFret < 11 || c.Engine.MaxFret > constants.MaxFret {
		return fmt.Errorf("engine.max_fret must be within [11, %d], got %d", constants.MaxFret, c.Engine.MaxFret)
	}
	if c.Engine.TopN < 1 {
		return fmt.Errorf("engine.top_n must be at least 1, got %d", c.Engine.TopN)
	}
	if c.Coach.MaxRetries < 1 {
		return fmt.Errorf("coach.max_retries must be at least 1, got %d", c.Coach.MaxRetries)
	}
	return nil
}
