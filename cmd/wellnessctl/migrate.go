package main

import (
	"github.com/spf13/cobra"

	"github.com/noah-isme/athlete-load-api/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version]",
	Short:     "Run database migrations",
	Long:      "Apply, roll back or inspect the embedded SQL migrations. Defaults to up.",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus, database.MigrateVersion},
	RunE: func(cmd *cobra.Command, args []string) error {
		command := database.MigrateUp
		if len(args) == 1 {
			command = args[0]
		}
		conn, err := openDB()
		if err != nil {
			return err
		}
		return database.Migrate(conn.DB, command, logr)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
