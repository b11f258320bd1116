package cli

import (
	"fmt"

	"rentalconnect/internal/cache"
	"rentalconnect/internal/server"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and maintain login sessions",
	}
	cmd.AddCommand(newSessionsPruneCmd())
	return cmd
}

func newSessionsPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete expired sessions from the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			var rdb *redis.Client
			if cfg.SessionBackend == "redis" {
				rdb, err = cache.Connect(cfg.RedisURL, nil)
				if err != nil {
					return err
				}
				defer rdb.Close()
			}

			store, err := server.NewSessionStore(cfg, db, rdb)
			if err != nil {
				return err
			}
			n, err := server.NewSessionManager(cfg, store).Cleanup(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out(cmd), "Pruned %d expired session(s).\n", n)
			return nil
		},
	}
}
