package db

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabase is returned by Open when no DSN is configured.
var ErrNoDatabase = errors.New("DATABASE_URL is not set")

// DB persists store snapshots in Postgres.
type DB struct {
	gdb *gorm.DB
}

// Open establishes the DB connection without running migrations
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, ErrNoDatabase
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	log.Println("✅ Database connection established successfully!")
	return &DB{gdb: gdb}, nil
}

// New wraps an existing gorm handle.
func New(gdb *gorm.DB) *DB {
	return &DB{gdb: gdb}
}

func (d *DB) Close() error {
	sqlDB, err := d.gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
