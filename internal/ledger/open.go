package ledger

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and configures a ledger backend.
type Config struct {
	Backend    string
	FilePath   string
	SQLitePath string
	Redis      RedisConfig
	WriteMode  WriteMode
}

// Open builds the configured store and wraps it in a Service.
func Open(ctx context.Context, cfg Config) (*Service, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Backend {
	case BackendFile, "":
		store, err = NewFile(cfg.FilePath)
	case BackendSQLite:
		store, err = NewSQLite(ctx, cfg.SQLitePath)
	case BackendRedis:
		store, err = NewRedis(ctx, cfg.Redis)
	case BackendMemory:
		store = NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s ledger: %w", cfg.Backend, err)
	}

	return NewService(store, cfg.WriteMode), nil
}
