package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/riftborn/internal/data"
)

// DefaultPath is where the arena config is read from unless ARPG_CONFIG is set.
const DefaultPath = "config/arena.yaml"

// Progression backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Arena holds all configuration for a combat session.
type Arena struct {
	LogLevel string `yaml:"log_level" env:"ARPG_LOG_LEVEL"`

	// Loop
	FrameInterval   time.Duration `yaml:"frame_interval"   env:"ARPG_FRAME_INTERVAL"`
	SessionDuration time.Duration `yaml:"session_duration" env:"ARPG_SESSION_DURATION"` // 0 = until signal

	Playfield Playfield `yaml:"playfield" envPrefix:"ARPG_PLAYFIELD_"`

	// Database
	Database DatabaseConfig `yaml:"database" envPrefix:"ARPG_DB_"`

	Progression Progression `yaml:"progression" envPrefix:"ARPG_PROGRESSION_"`

	// ArchetypeOverrides is the path to a YAML file with class tuning overrides.
	ArchetypeOverrides string `yaml:"archetype_overrides" env:"ARPG_ARCHETYPE_OVERRIDES"`

	Boss Boss `yaml:"boss" envPrefix:"ARPG_BOSS_"`
	Demo Demo `yaml:"demo" envPrefix:"ARPG_DEMO_"`
}

// Playfield is the arena rectangle; characters are clamped Inset away from its edges.
type Playfield struct {
	Width  float64 `yaml:"width"  env:"WIDTH"`
	Height float64 `yaml:"height" env:"HEIGHT"`
	Inset  float64 `yaml:"inset"  env:"INSET"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"     env:"HOST"`
	Port     int    `yaml:"port"     env:"PORT"`
	User     string `yaml:"user"     env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname"   env:"NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SSLMODE"`
	MaxConns int32  `yaml:"max_conns" env:"MAX_CONNS"` // 0 = pgxpool default
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Progression configures the meta-progression store.
type Progression struct {
	Backend        string `yaml:"backend"         env:"BACKEND"`
	StartingShards int    `yaml:"starting_shards" env:"STARTING_SHARDS"`
	ShardsPerRun   int    `yaml:"shards_per_run"  env:"SHARDS_PER_RUN"`
}

// Boss tunes the training boss the demo session spawns.
type Boss struct {
	MaxHealth      float64       `yaml:"max_health"      env:"MAX_HEALTH"`
	Damage         float64       `yaml:"damage"          env:"DAMAGE"`
	AttackInterval time.Duration `yaml:"attack_interval" env:"ATTACK_INTERVAL"`
	AttackRange    float64       `yaml:"attack_range"    env:"ATTACK_RANGE"`
}

// Demo describes the scripted character cmd/arena plays.
type Demo struct {
	Class   string   `yaml:"class"   env:"CLASS"`
	SaveID  string   `yaml:"save_id" env:"SAVE_ID"` // empty = create a new save
	Talents []string `yaml:"talents" env:"TALENTS" envSeparator:","`
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel:        "info",
		FrameInterval:   16 * time.Millisecond,
		SessionDuration: 30 * time.Second,
		Playfield: Playfield{
			Width:  1280,
			Height: 720,
			Inset:  50,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "riftborn",
			Password: "riftborn",
			DBName:   "riftborn",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Progression: Progression{
			Backend:        BackendMemory,
			StartingShards: 300,
			ShardsPerRun:   50,
		},
		Boss: Boss{
			MaxHealth:      2000,
			Damage:         15,
			AttackInterval: 1200 * time.Millisecond,
			AttackRange:    600,
		},
		Demo: Demo{
			Class: string(data.ClassWarrior),
		},
	}
}

// LoadArena loads arena config from a YAML file, then applies ARPG_* environment overrides.
// If the file doesn't exist, env overrides are applied on top of defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns ARPG_CONFIG if set, otherwise DefaultPath.
func Path() string {
	if p := os.Getenv("ARPG_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

// Validate rejects values the session cannot run with.
func (c Arena) Validate() error {
	if c.FrameInterval <= 0 {
		return fmt.Errorf("frame_interval must be positive, got %s", c.FrameInterval)
	}
	if c.SessionDuration < 0 {
		return fmt.Errorf("session_duration must not be negative")
	}

	p := c.Playfield
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("playfield %gx%g must be positive", p.Width, p.Height)
	}
	if p.Inset < 0 || p.Inset*2 >= p.Width || p.Inset*2 >= p.Height {
		return fmt.Errorf("playfield inset %g does not fit %gx%g", p.Inset, p.Width, p.Height)
	}

	switch c.Progression.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown progression backend %q", c.Progression.Backend)
	}
	if c.Progression.StartingShards < 0 || c.Progression.ShardsPerRun < 0 {
		return fmt.Errorf("progression shard amounts must not be negative")
	}

	if c.Boss.MaxHealth <= 0 {
		return fmt.Errorf("boss max_health must be positive")
	}
	if c.Boss.AttackInterval <= 0 {
		return fmt.Errorf("boss attack_interval must be positive")
	}

	// A loaded save brings its own class.
	if c.Demo.SaveID == "" || c.Demo.Class != "" {
		if _, err := data.ParseClass(c.Demo.Class); err != nil {
			return fmt.Errorf("demo: %w", err)
		}
	}
	return nil
}

// ParseLogLevel maps a config level name to slog.Level. Unknown names fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
