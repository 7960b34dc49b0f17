package main

import (
	"context"
	"fmt"

	"github.com/FranksOps/leadscout/internal/config"
	"github.com/FranksOps/leadscout/internal/storage"
	"github.com/FranksOps/leadscout/internal/storage/csvbackend"
	"github.com/FranksOps/leadscout/internal/storage/jsonbackend"
	"github.com/FranksOps/leadscout/internal/storage/postgres"
	"github.com/FranksOps/leadscout/internal/storage/sqlite"
)

// openStore returns the configured lead history backend, or nil when the
// store is disabled.
func openStore(ctx context.Context, sc config.StoreConfig) (storage.Backend, error) {
	var (
		b   storage.Backend
		err error
	)
	switch sc.Driver {
	case "", "none":
		return nil, nil
	case "json":
		b, err = jsonbackend.New(sc.DSN)
	case "csv":
		b, err = csvbackend.New(sc.DSN)
	case "sqlite":
		b, err = sqlite.New(sc.DSN)
	case "postgres":
		b, err = postgres.New(ctx, sc.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", sc.Driver, err)
	}
	return b, nil
}
