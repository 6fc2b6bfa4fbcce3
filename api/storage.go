package api

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/dynamo"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/filestore"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/memory"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/sqlstore"
)

// OpenRepository selects the storage backend. Strict backends return their
// error; adaptive degrades from SQL to JSON files to memory.
func OpenRepository(ctx context.Context, cfg StorageConfig) (*storage.Repository, error) {
	var (
		repo *storage.Repository
		err  error
	)
	switch cfg.Backend {
	case BackendMySQL, BackendPostgres:
		repo, err = openSQL(cfg, cfg.Backend)
	case BackendDynamo:
		repo, err = openDynamo(ctx, cfg)
	case BackendFile:
		repo, err = openFile(cfg)
	case BackendMemory:
		repo = memory.NewStore().Repository()
	case BackendAdaptive, "":
		repo = openAdaptive(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	logging.Log.Infof("STORAGE: using %s backend", repo.Mode)

	if cfg.Seed {
		if err := storage.Seed(ctx, repo, auth.HashPassword); err != nil {
			repo.Close()
			return nil, fmt.Errorf("seed %s backend: %w", repo.Mode, err)
		}
	}
	return repo, nil
}

func openAdaptive(cfg StorageConfig) *storage.Repository {
	if cfg.SQLDSN != "" {
		repo, err := openSQL(cfg, cfg.SQLDriver)
		if err == nil {
			return repo
		}
		logging.Log.Warnf("STORAGE: database unavailable, falling back to JSON files: %v", err)
	} else {
		logging.Log.Info("STORAGE: no database configured, trying JSON files")
	}

	repo, err := openFile(cfg)
	if err == nil {
		return repo
	}
	logging.Log.Warnf("STORAGE: JSON files unavailable, falling back to memory: %v", err)
	return memory.NewStore().Repository()
}

func openSQL(cfg StorageConfig, driver string) (*storage.Repository, error) {
	if cfg.SQLDSN == "" {
		return nil, fmt.Errorf("storage.sql.dsn is required for the %s backend", driver)
	}
	s, err := sqlstore.Open(sqlstore.Config{
		Driver:          driver,
		DSN:             cfg.SQLDSN,
		MaxIdleConns:    cfg.SQLMaxIdleConns,
		MaxOpenConns:    cfg.SQLMaxOpenConns,
		ConnMaxLifetime: cfg.SQLConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	return s.Repository(), nil
}

func openFile(cfg StorageConfig) (*storage.Repository, error) {
	s, err := filestore.Open(cfg.FileDir)
	if err != nil {
		return nil, err
	}
	return s.Repository(), nil
}

func openDynamo(ctx context.Context, cfg StorageConfig) (*storage.Repository, error) {
	s, err := dynamo.Open(ctx, dynamo.Config{
		Endpoint:    cfg.DynamoEndpoint,
		Region:      cfg.DynamoRegion,
		TablePrefix: cfg.DynamoTablePrefix,
	})
	if err != nil {
		return nil, err
	}
	if err := s.EnsureTables(ctx); err != nil {
		return nil, err
	}
	return s.Repository(), nil
}
