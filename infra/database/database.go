// Package database opens the gorm connection and brings the schema up to date.
package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	infrarepo "github.com/amirasaad/opsledger/infra/repository"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Driver names the SQL backend selected by the database URL.
type Driver string

const (
	Postgres Driver = "postgres"
	SQLite   Driver = "sqlite"
)

// ErrMissingURL is returned when DATABASE_URL is empty.
var ErrMissingURL = errors.New("DATABASE_URL is not set")

// DriverFor picks the backend for url and returns the DSN to hand to it.
// postgres:// and postgresql:// URLs select Postgres; sqlite:// URLs, file: DSNs and
// ":memory:" select SQLite.
func DriverFor(url string) (Driver, string, error) {
	switch {
	case url == "":
		return "", "", ErrMissingURL
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return Postgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		return SQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "file:"), url == ":memory:", strings.HasSuffix(url, ".db"):
		return SQLite, url, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme: %q", url)
	}
}

// NewConnection opens the database described by cfg. appEnv selects the SQL log level.
func NewConnection(cfg *config.DB, appEnv string) (*gorm.DB, Driver, error) {
	if cfg == nil {
		return nil, "", ErrMissingURL
	}
	driver, dsn, err := DriverFor(cfg.Url)
	if err != nil {
		return nil, "", err
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	var dialector gorm.Dialector
	switch driver {
	case Postgres:
		dialector = postgres.Open(dsn)
	case SQLite:
		dialector = sqlite.Open(dsn)
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, "", err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, "", err
	}
	if driver == SQLite {
		// One connection serializes writers instead of failing them with "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}
	return conn, driver, nil
}

// Migrate applies the embedded SQL migrations on Postgres and auto-migrates the gorm
// models on SQLite.
func Migrate(db *gorm.DB, driver Driver) error {
	if driver == SQLite {
		return db.AutoMigrate(infrarepo.Models()...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	target, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", target)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
