// Package sqlstore is the relational backend. It runs on MySQL or PostgreSQL
// through gorm.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"time"
)

type Config struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type Store struct {
	DB     *gorm.DB
	driver string
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported sql driver %q", driver)
}

// Open connects, tunes the pool and migrates every table.
func Open(cfg Config) (*Store, error) {
	dial, err := dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logging.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, 10))
	sqlDB.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, 100))
	if cfg.ConnMaxLifetime <= 0 {
		cfg.ConnMaxLifetime = time.Hour
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.AutoMigrate(
		&teamRow{},
		&userRow{},
		&challengeRow{},
		&scoreRow{},
		&activityRow{},
		&submissionRow{},
		&rankRow{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.Log.Infof("STORAGE: %s connection established and migrated", cfg.Driver)
	return &Store{DB: db, driver: cfg.Driver}, nil
}

func (s *Store) Repository() *storage.Repository {
	repo := &storage.Repository{
		Mode:        storage.ModeDatabase,
		Teams:       &teamStore{db: s.DB},
		Users:       &userStore{db: s.DB},
		Challenges:  &challengeStore{db: s.DB},
		Scores:      &scoreStore{db: s.DB},
		Activities:  &activityStore{db: s.DB},
		Submissions: &submissionStore{db: s.DB},
		Ranks:       &rankStore{db: s.DB},
	}
	repo.OnClose(s.Close)
	return repo
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// translate maps gorm errors onto the storage sentinels.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", storage.ErrNotFound, what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// update rewrites every column of row except the omitted ones. MySQL reports
// zero affected rows for unchanged values, so existence is checked first.
func update(ctx context.Context, db *gorm.DB, row any, id int, what string, omit ...string) error {
	var n int64
	if err := db.WithContext(ctx).Model(row).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(err, what)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, what)
	}
	tx := db.WithContext(ctx).Model(row).Select("*")
	if len(omit) > 0 {
		tx = tx.Omit(omit...)
	}
	return translate(tx.Updates(row).Error, what)
}

// affected turns a zero-row delete into ErrNotFound.
func affected(tx *gorm.DB, what string) error {
	if tx.Error != nil {
		return translate(tx.Error, what)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, what)
	}
	return nil
}
