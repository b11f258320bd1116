package database

import (
	"log"
	"strings"

	"rentalconnect/internal/domain"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type Options struct {
	// Silent disables gorm's SQL logging (tests, CLI).
	Silent bool
}

func Connect(dsn string, opts ...Options) (*gorm.DB, error) {
	cfg := &gorm.Config{
		// Bookings and payments keep pointing at soft-deleted properties and removed users.
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	for _, o := range opts {
		if o.Silent {
			cfg.Logger = logger.Default.LogMode(logger.Silent)
		}
	}

	if IsPostgres(dsn) {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	// SQLite allows a single writer; serialise through one connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Models lists every table owned by the API in dependency order.
func Models() []any {
	return []any{
		&domain.User{},
		&domain.Property{},
		&domain.PropertyComment{},
		&domain.WishlistItem{},
		&domain.Booking{},
		&domain.Payment{},
		&domain.Message{},
		&domain.Session{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
