// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Engine groups the tunable knobs of the basket strategy.
type Engine struct {
	Mode         string   `yaml:"mode"`
	Symbols      []string `yaml:"symbols"`
	MaxPosition  int      `yaml:"max_position"`
	ProfitTarget float64  `yaml:"profit_target"`
	LadderLevels int      `yaml:"ladder_levels"`
	BaseSize     int      `yaml:"base_size"`
	ArbSize      int      `yaml:"arb_size"`
	EntryZ       float64  `yaml:"entry_z"`
	ExitZ        float64  `yaml:"exit_z"`
}

// Replay configures the recorded-tick harness.
type Replay struct {
	TicksPath   string  `yaml:"ticks_path"`
	JournalDSN  string  `yaml:"journal_dsn"`
	TicksPerSec float64 `yaml:"ticks_per_sec"` // 0 = replay as fast as possible
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App    App    `yaml:"app"`
	Engine Engine `yaml:"engine"`
	Replay Replay `yaml:"replay"`
}

// Load reads a YAML file from disk and hydrates a Config struct. A .env file
// is loaded first when present; env vars override matching YAML keys.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	applyEnvOverrides(&config)
	setDefaults(&config)
	return &config, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.App.LogLevel = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.App.MetricsAddr = v
	}
	if v := os.Getenv("TICKS_PATH"); v != "" {
		cfg.Replay.TicksPath = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "basketbot"
	}
	if cfg.App.MetricsAddr == "" {
		cfg.App.MetricsAddr = ":9091"
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.Engine.Mode == "" {
		cfg.Engine.Mode = "basket"
	}
	if len(cfg.Engine.Symbols) == 0 {
		cfg.Engine.Symbols = []string{"ABRA", "DROWZEE", "SUDOWOODO"}
	}
	if cfg.Replay.TicksPath == "" {
		cfg.Replay.TicksPath = "data/ticks.jsonl"
	}
}
