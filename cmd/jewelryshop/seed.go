package main

import (
	"github.com/aurumatelier/jewelry-catalog/app/database"
	"github.com/aurumatelier/jewelry-catalog/app/fixtures"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedFile  string
	seedReset bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a YAML catalog fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := fixtures.Load(seedFile)
		if err != nil {
			return err
		}

		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := database.Migrate(db); err != nil {
			return err
		}
		if seedReset {
			if err := database.Reset(db); err != nil {
				return err
			}
			log.Info("Catalog tables emptied")
		}

		sum, err := fixtures.Apply(cmd.Context(), db, f)
		if err != nil {
			return err
		}
		log.Info("Fixture loaded",
			zap.String("file", seedFile),
			zap.Int("collections", sum.Collections),
			zap.Int("categories", sum.Categories),
			zap.Int("products", sum.Products),
			zap.Int("images", sum.Images),
			zap.Bool("landing", sum.Landing),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures/catalog.yaml", "fixture file to load")
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "empty every catalog table before loading")
}
