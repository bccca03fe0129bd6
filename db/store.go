package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NeuraX-HQ/neurax-web-app/cache"
	"github.com/NeuraX-HQ/neurax-web-app/config"
)

const (
	EngineMemory   = "memory"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineRedis    = "redis"
)

// Store is the secure key-value storage behind the auth session.
// Values are opaque strings; a missing key reports ok == false.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrUnsupportedEngine = errors.New("unsupported store engine")

// NewByEngine opens the configured backend and seals it when a secret is set.
func NewByEngine(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		st  Store
		err error
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Store.Engine)) {
	case EngineMemory:
		st = NewMemoryStore()
	case "", EngineSQLite:
		st, err = NewSQLiteStore(cfg.Store.Path)
	case EnginePostgres:
		gdb, cerr := Connect(ctx, cfg.Database)
		if cerr != nil {
			return nil, cerr
		}
		st, err = NewPostgresStore(gdb)
	case EngineRedis:
		client, cerr := cache.InitRedis(ctx, cfg.Redis)
		if cerr != nil {
			return nil, cerr
		}
		st = cache.NewRedisStore(client, "nutritrack:kv:")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, cfg.Store.Engine)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Store.Secret == "" {
		return st, nil
	}
	sealed, err := NewSealedStore(st, cfg.Store.Secret)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return sealed, nil
}
