package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/aurumatelier/jewelry-catalog/config"
	"github.com/aurumatelier/jewelry-catalog/models"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entities lists every persisted model in dependency order.
func Entities() []any {
	return []any{
		&models.Collection{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.LandingConfig{},
		&models.LandingThreeItem{},
	}
}

// Tables lists the tables owned by the catalog, join tables included.
func Tables() []string {
	return []string{
		"landing_three_items",
		"landing_config_goods",
		"landing_configs",
		"product_images",
		"products",
		"categories",
		"collections",
	}
}

// Open connects to PostgreSQL and sizes the connection pool.
func Open(cfg config.PostgresConfig, log logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         log,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Entities()...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// truncateStatement empties tables and resets their id sequences.
func truncateStatement(tables []string) string {
	quoted := make([]string, len(tables))
	for i, t := range tables {
		quoted[i] = pq.QuoteIdentifier(t)
	}
	return "TRUNCATE TABLE " + strings.Join(quoted, ", ") + " RESTART IDENTITY CASCADE"
}

// Reset removes all catalog data. PostgreSQL only.
func Reset(db *gorm.DB) error {
	if err := db.Exec(truncateStatement(Tables())).Error; err != nil {
		return fmt.Errorf("resetting catalog tables: %w", err)
	}
	return nil
}
