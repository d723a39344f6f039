package main

import (
	"context"
	"fmt"

	mem "animal-shelter/internal/adapters/storage/memory"
	"animal-shelter/internal/adapters/storage/mongodb"
	pg "animal-shelter/internal/adapters/storage/postgres"
	"animal-shelter/internal/domain/animals"
	"animal-shelter/internal/platform/config"
)

// openRepo conecta el backend configurado. El caller cierra el repo.
func openRepo(ctx context.Context, cfg *config.Config) (animals.Repository, error) {
	switch cfg.Storage {
	case config.StorageMongo:
		client, err := mongodb.Open(ctx, mongodb.Config{
			Host:       cfg.Mongo.Host,
			Username:   cfg.Mongo.Username,
			Password:   cfg.Mongo.Password,
			AuthSource: cfg.Mongo.AuthSource,
		})
		if err != nil {
			return nil, err
		}
		return mongodb.NewAnimalsRepo(client, cfg.Mongo.Database, cfg.Mongo.Collection), nil

	case config.StoragePostgres:
		db, err := pg.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return pg.NewAnimalsRepo(db), nil

	case config.StorageMemory:
		return mem.NewAnimalsRepo(), nil
	}
	return nil, fmt.Errorf("storage %q: %w", cfg.Storage, config.ErrInvalidConfig)
}
