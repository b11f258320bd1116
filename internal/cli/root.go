// Package cli defines the cobra command tree for rentalctl, the operator tool.
package cli

import (
	"fmt"
	"io"

	"rentalconnect/internal/config"
	"rentalconnect/internal/database"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var flagDB string

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rentalctl",
		Short:         "Operate a Rental Connect deployment",
		Long:          "Maintenance commands for Rental Connect: schema migration, demo data, admin accounts and session pruning.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", "", "database DSN or SQLite path (default: DATABASE_URL)")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newCreateAdminCmd(),
		newSessionsCmd(),
	)
	return root
}

// loadConfig reads the same configuration as the API server, with --db taking precedence.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.DatabaseURL = flagDB
	}
	return cfg, nil
}

// openDB connects and migrates, so every command sees the current schema.
func openDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg.DatabaseURL, database.Options{Silent: true})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
