package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver string
	DSN    string
	// Quiet silences the SQL logger.
	Quiet bool
}

// Open connects through gorm. SQLite is pinned to a single connection so an
// in-memory database is shared by every caller and writes are serialized.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(opts.Driver) {
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("database: postgres requires a DSN")
		}
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite:
		dsn := opts.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", opts.Driver)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	if opts.Quiet {
		gormLog = gormLogger.Default.LogMode(gormLogger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("database: connect %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if strings.ToLower(opts.Driver) == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
