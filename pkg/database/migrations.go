package database

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrator applies pending "NNN_name.up.sql" migrations with golang-migrate
type Migrator struct {
	db     *DB
	source fs.FS
	logger *zap.Logger
}

// NewMigrator creates a migrator over the migrations shipped with the binary
func NewMigrator(db *DB, logger *zap.Logger) *Migrator {
	return NewMigratorFS(db, mustSub(embeddedMigrations, "migrations"), logger)
}

// mustSub panics when dir is not a valid path into fsys
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("migrations: %v", err))
	}
	return sub
}

// NewMigratorFS creates a migrator reading migration files from the root of source
func NewMigratorFS(db *DB, source fs.FS, logger *zap.Logger) *Migrator {
	return &Migrator{db: db, source: source, logger: logger}
}

// Run applies every pending up migration in version order.
// It returns the number of migrations applied.
func (m *Migrator) Run() (int, error) {
	src, err := iofs.New(m.source, ".")
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}
	defer src.Close()

	driver, err := sqlite3.WithInstance(m.db.DB, &sqlite3.Config{})
	if err != nil {
		return 0, fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Closing the migrate instance would close the shared *sql.DB as well.
	mg, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrator: %w", err)
	}

	before, err := currentVersion(mg)
	if err != nil {
		return 0, err
	}

	if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	after, err := currentVersion(mg)
	if err != nil {
		return 0, err
	}

	applied, err := countVersions(src, before, after)
	if err != nil {
		return 0, fmt.Errorf("failed to count migrations: %w", err)
	}

	m.logger.Info("Database migrations completed",
		zap.Int("applied", applied),
		zap.Int("version", after))
	return applied, nil
}

// currentVersion returns -1 when no migration ran yet
func currentVersion(mg *migrate.Migrate) (int, error) {
	v, dirty, err := mg.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("schema version %d is dirty", v)
	}
	return int(v), nil
}

// countVersions counts source versions in (from, to]
func countVersions(src source.Driver, from, to int) (int, error) {
	count := 0
	v, err := src.First()
	for err == nil {
		if int(v) > from && int(v) <= to {
			count++
		}
		v, err = src.Next(v)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, err
	}
	return count, nil
}
