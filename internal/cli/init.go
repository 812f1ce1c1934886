package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/lotledger/internal/config"
	"github.com/example/lotledger/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the lotledger configuration and database",
		Long: `Write the default configuration to ~/.lotledger/config.json and, for the
sqlite backend, create the database with the required schema.

The postgres backend reads its connection string from the PG_DSN
environment variable (a .env file next to the config is also loaded) and
creates its schema on first connect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}

			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			if store != "" {
				if store != config.StoreSQLite && store != config.StorePostgres {
					return fmt.Errorf("unknown store backend %q", store)
				}
				cfg.Store = store
			}

			if err := config.Save(home, cfg); err != nil {
				return err
			}
			fmt.Println("✓ Configuration written to ~/.lotledger/config.json")

			if cfg.Store == config.StoreSQLite {
				path := cfg.SQLitePath
				if path == "" {
					path, err = db.DefaultPath()
					if err != nil {
						return err
					}
				}
				conn, err := db.Open(path)
				if err != nil {
					return fmt.Errorf("failed to initialize database: %w", err)
				}
				conn.Close()
				fmt.Printf("✓ Database initialized at %s\n", path)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  lotledger debtor add <inn> --name <name>")
			fmt.Println("  lotledger ingest messages.json")

			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Storage backend: sqlite or postgres")

	return cmd
}
