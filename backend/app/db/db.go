package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver string // "sqlite" or "mysql"
	DSN    string // sqlite file path or mysql DSN
}

// Open connects to the configured engine. SQLite is the default: the store is
// a single file opened in WAL mode with foreign keys on and a busy timeout so
// concurrent requests queue instead of failing.
func Open(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "attendance.db"
		}
		gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, err
		}
		for _, pragma := range []string{
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
			"PRAGMA foreign_keys = ON",
		} {
			if err := gdb.Exec(pragma).Error; err != nil {
				return nil, err
			}
		}
		return gdb, nil
	case "mysql":
		return gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	}
	return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
