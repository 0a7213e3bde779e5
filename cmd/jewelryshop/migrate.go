package main

import (
	"github.com/aurumatelier/jewelry-catalog/app/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("Schema is up to date")
		return nil
	},
}
