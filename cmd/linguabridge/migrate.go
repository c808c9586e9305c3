package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/linguabridge/internal/app"
	"github.com/joseph-ayodele/linguabridge/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Connect to DB_URL with DB_DRIVER (sqlite or postgres), check it is reachable
and apply the schema. Safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		db, err := app.OpenDB(ctx, cfg, logger.WithComponent("migrate"))
		if err != nil {
			return err
		}
		defer db.Close()
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", db.Dialect)
		return err
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
