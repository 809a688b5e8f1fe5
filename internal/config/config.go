// Package config loads draftboard settings from .env, the environment and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/malexanderboyd/pwr9-draftboard/internal/game"
	"github.com/malexanderboyd/pwr9-draftboard/internal/persistence"
	"github.com/malexanderboyd/pwr9-draftboard/internal/storage"
)

type Config struct {
	Port            int           `env:"DRAFTBOARD_PORT" envDefault:"8080"`
	Title           string        `env:"DRAFTBOARD_TITLE" envDefault:"Fantasy Football Draft Board"`
	Teams           int           `env:"DRAFTBOARD_TEAMS" envDefault:"12"`
	Rounds          int           `env:"DRAFTBOARD_ROUNDS" envDefault:"15"`
	ManualPickEntry bool          `env:"DRAFTBOARD_MANUAL_PICK_ENTRY"`
	LoadSample      bool          `env:"DRAFTBOARD_LOAD_SAMPLE"`
	WebRoot         string        `env:"DRAFTBOARD_WEBROOT" envDefault:"webroot"`
	AllowedOrigins  []string      `env:"DRAFTBOARD_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel        string        `env:"DRAFTBOARD_LOG_LEVEL" envDefault:"info"`
	Development     bool          `env:"DRAFTBOARD_DEV"`
	SnapshotKey     string        `env:"DRAFTBOARD_SNAPSHOT_KEY"`
	ShutdownTimeout time.Duration `env:"DRAFTBOARD_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Storage         Storage
}

type Storage struct {
	Backend     string `env:"DRAFTBOARD_STORAGE" envDefault:"file"`
	DataDir     string `env:"DRAFTBOARD_DATA_DIR" envDefault:"data"`
	RedisURL    string `env:"REDIS_URL"`
	SQLitePath  string `env:"DRAFTBOARD_SQLITE_PATH" envDefault:"data/draftboard.db"`
	PostgresDSN string `env:"DATABASE_URL"`

	S3Bucket          string `env:"S3_BUCKET"`
	S3Prefix          string `env:"S3_PREFIX" envDefault:"draftboard"`
	S3Region          string `env:"S3_REGION"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
}

// Load reads .env (if present), then the environment, then args.
func Load(args []string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := Config{SnapshotKey: persistence.DefaultKey}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("draftboard", flag.ContinueOnError)
	fs.IntVar(&c.Port, "port", c.Port, "http port")
	fs.StringVar(&c.Title, "title", c.Title, "board title")
	fs.IntVar(&c.Teams, "teams", c.Teams, "number of teams")
	fs.IntVar(&c.Rounds, "rounds", c.Rounds, "number of rounds")
	fs.BoolVar(&c.ManualPickEntry, "manual", c.ManualPickEntry, "enter pick numbers by hand instead of auto numbering")
	fs.BoolVar(&c.LoadSample, "sample", c.LoadSample, "draft the sample players at startup")
	fs.StringVar(&c.WebRoot, "webroot", c.WebRoot, "directory served at /")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.Development, "dev", c.Development, "human readable development logging")
	fs.StringVar(&c.Storage.Backend, "storage", c.Storage.Backend, "memory, file, redis, sqlite, postgres or s3")
	fs.StringVar(&c.Storage.DataDir, "data-dir", c.Storage.DataDir, "directory for the file backend")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port must be between 1 and 65535, got %d", c.Port))
	}
	if err := c.Options().Validate(); err != nil {
		errs = append(errs, err)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}

	s := c.Storage
	switch strings.ToLower(s.Backend) {
	case storage.BackendMemory, storage.BackendFile, storage.BackendSQLite:
	case storage.BackendRedis:
		if s.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	case storage.BackendPostgres:
		if s.PostgresDSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case storage.BackendS3:
		if s.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", s.Backend))
	}
	return errors.Join(errs...)
}

func (c *Config) Options() game.Options {
	return game.Options{
		Title:           c.Title,
		TeamCount:       c.Teams,
		RoundCount:      c.Rounds,
		ManualPickEntry: c.ManualPickEntry,
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (s Storage) StoreConfig() storage.Config {
	return storage.Config{
		Backend:     strings.ToLower(s.Backend),
		DataDir:     s.DataDir,
		RedisURL:    s.RedisURL,
		SQLitePath:  s.SQLitePath,
		PostgresDSN: s.PostgresDSN,
		S3: storage.S3Config{
			Bucket:          s.S3Bucket,
			Prefix:          s.S3Prefix,
			Region:          s.S3Region,
			Endpoint:        s.S3Endpoint,
			AccessKeyID:     s.S3AccessKeyID,
			SecretAccessKey: s.S3SecretAccessKey,
		},
	}
}
