// Package storage holds the key-value blob stores a draft board can be
// persisted to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a key-value blob store. Get returns ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

type Config struct {
	Backend     string
	DataDir     string
	RedisURL    string
	SQLitePath  string
	PostgresDSN string
	S3          S3Config
}

// Open builds the store named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch strings.ToLower(cfg.Backend) {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		var f *File
		if f, err = NewFile(cfg.DataDir); err == nil {
			store = f
		}
	case BackendRedis:
		var r *Redis
		if r, err = NewRedisFromURL(ctx, cfg.RedisURL); err == nil {
			store = r
		}
	case BackendSQLite:
		var s *SQL
		if s, err = OpenSQLite(cfg.SQLitePath); err == nil {
			store = s
		}
	case BackendPostgres:
		var s *SQL
		if s, err = OpenPostgres(ctx, cfg.PostgresDSN); err == nil {
			store = s
		}
	case BackendS3:
		var s *S3
		if s, err = NewS3(ctx, cfg.S3); err == nil {
			store = s
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: key is required")
	}
	return nil
}
