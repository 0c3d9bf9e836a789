// Package app wires storage and repositories from configuration. Both binaries
// share it so the server and the CLI see the same key layout.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearby/internal/config"
	"github.com/kailas-cloud/nearby/internal/db"
	"github.com/kailas-cloud/nearby/internal/db/memory"
	dbRedis "github.com/kailas-cloud/nearby/internal/db/redis"
	poirepo "github.com/kailas-cloud/nearby/internal/repository/poi"
	postalcoderepo "github.com/kailas-cloud/nearby/internal/repository/postalcode"
)

// OpenStore creates the configured store and waits until it answers.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("connected to database", zap.String("driver", cfg.Driver), zap.Strings("addrs", cfg.Addrs))
	return store, nil
}

// Repositories groups the record repositories over one store.
type Repositories struct {
	PostalCodes *postalcoderepo.Repo
	Locations   *poirepo.Repo
}

// NewRepositories builds repositories sharing store and key prefix.
func NewRepositories(store db.Store, prefix string) Repositories {
	return Repositories{
		PostalCodes: postalcoderepo.New(store, prefix),
		Locations:   poirepo.New(store, prefix),
	}
}
