package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CategorySummary is a category with the number of active products in it.
type CategorySummary struct {
	Category
	ProductCount int64 `json:"product_count"`
}

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]CategorySummary, error) {
	var summaries []CategorySummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categories []Category
		if err := tx.Order("name ASC").Find(&categories).Error; err != nil {
			return err
		}
		counts, err := activeCounts(tx, "products.category_id")
		if err != nil {
			return err
		}
		summaries = make([]CategorySummary, len(categories))
		for i, c := range categories {
			summaries[i] = CategorySummary{Category: c, ProductCount: counts[c.ID]}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return summaries, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, c *Category) error {
	assignSlug(&c.Slug, c.Name)
	if err := ValidateCategory(c); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &Category{}, "name", c.Name, 0); err != nil {
			return err
		}
		if err := ensureUnique(tx, &Category{}, "slug", c.Slug, 0); err != nil {
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			return storeError("creating category", "slug", err)
		}
		return nil
	})
}

func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uint, changes Category) (*Category, error) {
	var c Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &c, id, ErrCategoryNotFound); err != nil {
			return err
		}
		c.Name = changes.Name
		c.Description = changes.Description
		if changes.Slug != "" {
			c.Slug = changes.Slug
		}
		if err := ValidateCategory(&c); err != nil {
			return err
		}
		if err := ensureUnique(tx, &Category{}, "name", c.Name, c.ID); err != nil {
			return err
		}
		if err := ensureUnique(tx, &Category{}, "slug", c.Slug, c.ID); err != nil {
			return err
		}
		if err := tx.Save(&c).Error; err != nil {
			return storeError("updating category", "slug", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Category
		if err := findByID(tx, &c, id, ErrCategoryNotFound); err != nil {
			return err
		}
		n, err := countWhere(tx, &Product{}, "category_id = ?", id)
		if err != nil {
			return fmt.Errorf("counting category products: %w", err)
		}
		if n > 0 {
			return &ReferentialIntegrityError{Entity: "category " + c.Slug, ReferencedBy: "products", Count: n}
		}
		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("deleting category: %w", err)
		}
		return nil
	})
}
