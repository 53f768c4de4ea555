package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/noah-isme/athlete-load-api/pkg/config"
	"github.com/noah-isme/athlete-load-api/pkg/database"
	"github.com/noah-isme/athlete-load-api/pkg/logger"
)

var (
	cfg  *config.Config
	logr *zap.Logger
	db   *sqlx.DB
)

var rootCmd = &cobra.Command{
	Use:   "wellnessctl",
	Short: "Operator tooling for the athlete load API",
	Long: `wellnessctl manages the athlete load database and developer fixtures.

  $ wellnessctl migrate up                 # Apply pending migrations
  $ wellnessctl migrate status             # Show applied migrations
  $ wellnessctl seed --days 28 --athletes 12
  $ wellnessctl token --user dev --role DEVELOPER

Settings are read from the environment and an optional .env file, the
same way the API server reads them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logr, err = logger.New(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if db != nil {
			err = multierr.Append(err, db.Close())
			db = nil
		}
		if logr != nil {
			// Sync fails on stderr/stdout sinks; the close error is what matters.
			_ = logr.Sync()
		}
		return err
	},
}

// openDB connects once per invocation; the post-run hook closes it.
func openDB() (*sqlx.DB, error) {
	if db != nil {
		return db, nil
	}
	conn, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db = conn
	return db, nil
}
