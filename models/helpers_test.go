package models

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every statement on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&Collection{},
		&Category{},
		&Product{},
		&ProductImage{},
		&LandingConfig{},
		&LandingThreeItem{},
	))
	return db
}

// catalogFixture is a small catalog shared by the repository tests.
type catalogFixture struct {
	db          *gorm.DB
	collections *CollectionsRepository
	categories  *CategoriesRepository
	products    *ProductsRepository
	landing     *LandingRepository
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	db := newTestDB(t)
	return &catalogFixture{
		db:          db,
		collections: NewCollectionsRepository(db),
		categories:  NewCategoriesRepository(db),
		products:    NewProductsRepository(db),
		landing:     NewLandingRepository(db),
	}
}

func (f *catalogFixture) collection(t *testing.T, name string) *Collection {
	t.Helper()
	c := &Collection{Name: name}
	require.NoError(t, f.collections.CreateCollection(context.Background(), c))
	return c
}

func (f *catalogFixture) category(t *testing.T, name string) *Category {
	t.Helper()
	c := &Category{Name: name}
	require.NoError(t, f.categories.CreateCategory(context.Background(), c))
	return c
}

func (f *catalogFixture) product(t *testing.T, name string, col *Collection, cat *Category, active bool) *Product {
	t.Helper()
	p := &Product{
		Name:         name,
		CollectionID: col.ID,
		CategoryID:   cat.ID,
		Price:        decimal.NewFromInt(100),
		SKU:          "SKU-" + Slugify(name),
		IsActive:     active,
	}
	require.NoError(t, f.products.CreateProduct(context.Background(), p))
	return p
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func facetCounts(facets []FacetCount) map[string]int64 {
	out := make(map[string]int64, len(facets))
	for _, f := range facets {
		out[f.Slug] = f.ProductCount
	}
	return out
}
