package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Level sources.
const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Navigation holds all configuration for the navigation simulator.
type Navigation struct {
	LogLevel  string `yaml:"log_level"`
	Heuristic string `yaml:"heuristic"` // euclidean, chebyshev, manhattan

	Level Level `yaml:"level"`
	Sim   Sim   `yaml:"sim"`

	// Database
	Database DatabaseConfig `yaml:"database"`
}

// Level selects where the terrain is loaded from.
type Level struct {
	Source string `yaml:"source"` // file or database
	Path   string `yaml:"path"`
	Name   string `yaml:"name"`
	Watch  bool   `yaml:"watch"` // reload on file change (file source only)
}

// Sim holds tick-loop parameters.
type Sim struct {
	Agents       int           `yaml:"agents"`
	Ticks        int           `yaml:"ticks"` // 0 = run until interrupted
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         uint64        `yaml:"seed"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultNavigation returns Navigation config with sensible defaults.
func DefaultNavigation() Navigation {
	return Navigation{
		LogLevel:  "info",
		Heuristic: "euclidean",
		Level: Level{
			Source: SourceFile,
			Path:   "levels/training.yaml",
			Name:   "training",
		},
		Sim: Sim{
			Agents:       8,
			Ticks:        100,
			TickInterval: 100 * time.Millisecond,
			Seed:         1,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gridnav",
			Password: "gridnav",
			DBName:   "gridnav",
			SSLMode:  "disable",
		},
	}
}

// Validate checks values that have no usable fallback.
func (n Navigation) Validate() error {
	switch n.Level.Source {
	case SourceFile:
		if n.Level.Path == "" {
			return fmt.Errorf("level.path is required for source %q", SourceFile)
		}
	case SourceDatabase:
		if n.Level.Name == "" {
			return fmt.Errorf("level.name is required for source %q", SourceDatabase)
		}
		if n.Level.Watch {
			return fmt.Errorf("level.watch is only supported for source %q", SourceFile)
		}
	default:
		return fmt.Errorf("unknown level.source %q", n.Level.Source)
	}
	if n.Sim.Agents < 0 || n.Sim.Ticks < 0 || n.Sim.TickInterval < 0 {
		return fmt.Errorf("sim values must not be negative")
	}
	return nil
}

// LoadNavigation loads navigation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadNavigation(path string) (Navigation, error) {
	cfg := DefaultNavigation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
