package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
)

// openStore builds the configured credential store. The returned close
// function releases any connection the store holds.
func openStore(ctx context.Context, cfg StoreConfig) (credstore.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case StoreFile:
		return credstore.NewFileStore(cfg.Path), noop, nil

	case StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("creating store directory: %w", err)
		}
		s, err := credstore.NewSQLiteStore(sqliteDSN(cfg.Path))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case StoreRedis:
		client, err := credstore.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return credstore.NewRedisStore(client, cfg.RedisPrefix), client.Close, nil

	case StoreMemory:
		return credstore.NewMemoryStore(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}

func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
}
