package main

import (
	"fmt"
	"os"

	"github.com/aurumatelier/jewelry-catalog/app/database"
	"github.com/aurumatelier/jewelry-catalog/app/logging"
	"github.com/aurumatelier/jewelry-catalog/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "jewelryshop",
	Short: "Jewelry storefront catalog backend",
	Long: `jewelryshop serves the storefront catalog and its admin API.

Examples:

  jewelryshop migrate
  jewelryshop seed --file fixtures/catalog.yaml
  jewelryshop serve --addr :8080
`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOGGER_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// bootstrap loads configuration, builds the logger and connects to the database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	_ = godotenv.Load() // .env is optional
	cfg := config.LoadEnv()
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}

	log, err := logging.New(cfg.Logger, cfg.Server.IsDevelopment())
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Open(cfg.Postgres, logging.Gorm(log))
	if err != nil {
		_ = log.Sync()
		return nil, nil, nil, err
	}
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	return cfg, log, db, nil
}
