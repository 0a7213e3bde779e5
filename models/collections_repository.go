package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CollectionSummary is a collection with the number of active products in it.
type CollectionSummary struct {
	Collection
	ProductCount int64 `json:"product_count"`
}

type CollectionsRepository struct {
	db *gorm.DB
}

func NewCollectionsRepository(db *gorm.DB) *CollectionsRepository {
	return &CollectionsRepository{db: db}
}

// GetAllCollections lists every collection by name with its active-product count.
func (r *CollectionsRepository) GetAllCollections(ctx context.Context) ([]CollectionSummary, error) {
	var summaries []CollectionSummary
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collections []Collection
		if err := tx.Order("name ASC").Find(&collections).Error; err != nil {
			return err
		}
		counts, err := activeCounts(tx, "products.collection_id")
		if err != nil {
			return err
		}
		summaries = make([]CollectionSummary, len(collections))
		for i, c := range collections {
			summaries[i] = CollectionSummary{Collection: c, ProductCount: counts[c.ID]}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return summaries, nil
}

func (r *CollectionsRepository) GetByID(ctx context.Context, id uint) (*Collection, error) {
	var c Collection
	if err := findByID(r.db.WithContext(ctx), &c, id, ErrCollectionNotFound); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCollection derives the slug when missing, validates and inserts.
func (r *CollectionsRepository) CreateCollection(ctx context.Context, c *Collection) error {
	assignSlug(&c.Slug, c.Name)
	if err := ValidateCollection(c); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &Collection{}, "name", c.Name, 0); err != nil {
			return err
		}
		if err := ensureUnique(tx, &Collection{}, "slug", c.Slug, 0); err != nil {
			return err
		}
		if err := tx.Create(c).Error; err != nil {
			return storeError("creating collection", "slug", err)
		}
		return nil
	})
}

// UpdateCollection applies the editable fields of changes to collection id.
// An empty slug keeps the stored one.
func (r *CollectionsRepository) UpdateCollection(ctx context.Context, id uint, changes Collection) (*Collection, error) {
	var c Collection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx, &c, id, ErrCollectionNotFound); err != nil {
			return err
		}
		c.Name = changes.Name
		c.Description = changes.Description
		c.Photo = changes.Photo
		c.QuickLink = changes.QuickLink
		if changes.Slug != "" {
			c.Slug = changes.Slug
		}
		if err := ValidateCollection(&c); err != nil {
			return err
		}
		if err := ensureUnique(tx, &Collection{}, "name", c.Name, c.ID); err != nil {
			return err
		}
		if err := ensureUnique(tx, &Collection{}, "slug", c.Slug, c.ID); err != nil {
			return err
		}
		if err := tx.Save(&c).Error; err != nil {
			return storeError("updating collection", "slug", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteCollection removes a collection no product references.
func (r *CollectionsRepository) DeleteCollection(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c Collection
		if err := findByID(tx, &c, id, ErrCollectionNotFound); err != nil {
			return err
		}
		n, err := countWhere(tx, &Product{}, "collection_id = ?", id)
		if err != nil {
			return fmt.Errorf("counting collection products: %w", err)
		}
		if n > 0 {
			return &ReferentialIntegrityError{Entity: "collection " + c.Slug, ReferencedBy: "products", Count: n}
		}
		if err := tx.Delete(&c).Error; err != nil {
			return fmt.Errorf("deleting collection: %w", err)
		}
		return nil
	})
}
