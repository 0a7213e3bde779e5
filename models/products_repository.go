package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func withRefs(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Collection").Preload("Category").Preload("Images", preloadImages)
}

// Browse returns the active products matching f ordered by name, the total
// match count, and the collection and category facets. Everything is read in
// one transaction so counts and rows agree.
func (r *ProductsRepository) Browse(ctx context.Context, f CatalogFilters) (*CatalogPage, error) {
	page := &CatalogPage{}
	dims := []dimension{collectionDimension(f.CollectionSlugs), categoryDimension(f.CategorySlugs)}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := activeProducts(tx, dims...).Count(&page.Total).Error; err != nil {
			return err
		}

		query := withRefs(activeProducts(tx, dims...)).Order("products.name ASC").Order("products.id ASC")
		if f.Offset > 0 {
			query = query.Offset(f.Offset)
		}
		if f.Limit > 0 {
			query = query.Limit(f.Limit)
		}
		if err := query.Find(&page.Products).Error; err != nil {
			return err
		}

		var err error
		if page.Collections, err = collectionFacets(tx, f); err != nil {
			return err
		}
		page.Categories, err = categoryFacets(tx, f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("browsing catalog: %w", err)
	}
	return page, nil
}

// GetBySlug loads a product with its collection, category and images,
// whether or not it is active.
func (r *ProductsRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	if err := withRefs(r.db.WithContext(ctx)).
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := findByID(withRefs(r.db.WithContext(ctx)), &product, id, ErrProductNotFound); err != nil {
		return nil, err
	}
	return &product, nil
}

// checkProduct runs field validation plus the checks that need the store:
// both references must exist, and slug and SKU must be free.
func checkProduct(tx *gorm.DB, p *Product) error {
	if err := ValidateProduct(p); err != nil {
		return err
	}
	if n, err := countWhere(tx, &Collection{}, "id = ?", p.CollectionID); err != nil {
		return fmt.Errorf("checking collection: %w", err)
	} else if n == 0 {
		return invalid("collection_id", "collection %d does not exist", p.CollectionID)
	}
	if n, err := countWhere(tx, &Category{}, "id = ?", p.CategoryID); err != nil {
		return fmt.Errorf("checking category: %w", err)
	} else if n == 0 {
		return invalid("category_id", "category %d does not exist", p.CategoryID)
	}
	if err := ensureUnique(tx, &Product{}, "slug", p.Slug, p.ID); err != nil {
		return err
	}
	return ensureUnique(tx, &Product{}, "sku", p.SKU, p.ID)
}

// CreateProduct applies defaults, derives the slug when missing, validates and
// inserts p. On success p is reloaded with its references.
func (r *ProductsRepository) CreateProduct(ctx context.Context, p *Product) error {
	p.ApplyDefaults()
	assignSlug(&p.Slug, p.Name)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkProduct(tx, p); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return storeError("creating product", "sku", err)
		}
		return withRefs(tx).First(p, p.ID).Error
	})
}

// UpdateProduct loads product id, lets apply edit it, then validates and saves.
// The slug is only replaced when apply sets a non-empty one.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, apply func(p *Product)) (*Product, error) {
	var p Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &p, id, ErrProductNotFound); err != nil {
			return err
		}
		slug := p.Slug
		apply(&p)
		p.ID = id
		if p.Slug == "" {
			p.Slug = slug
		}
		p.ApplyDefaults()
		if err := checkProduct(tx, &p); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return storeError("updating product", "sku", err)
		}
		p = Product{}
		return withRefs(tx).First(&p, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduct removes a product, its images and its featured-goods links.
// A product placed in the landing three-items block cannot be deleted.
func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		if err := findByID(tx, &p, id, ErrProductNotFound); err != nil {
			return err
		}
		n, err := countWhere(tx, &LandingThreeItem{}, "product_id = ?", id)
		if err != nil {
			return fmt.Errorf("counting landing items: %w", err)
		}
		if n > 0 {
			return &ReferentialIntegrityError{Entity: "product " + p.Slug, ReferencedBy: "landing three-items entries", Count: n}
		}
		if err := tx.Exec("DELETE FROM landing_config_goods WHERE product_id = ?", id).Error; err != nil {
			return fmt.Errorf("unlinking landing goods: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&ProductImage{}).Error; err != nil {
			return fmt.Errorf("deleting product images: %w", err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("deleting product: %w", err)
		}
		return nil
	})
}

// AddImage attaches img to product productID, up to MaxProductImages per product.
func (r *ProductsRepository) AddImage(ctx context.Context, productID uint, img *ProductImage) error {
	img.ProductID = productID
	img.Image = ImageUploadPath(productID, img.Image)
	if err := ValidateImage(img); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		if err := findByID(tx.Clauses(clause.Locking{Strength: "UPDATE"}), &p, productID, ErrProductNotFound); err != nil {
			return err
		}
		n, err := countWhere(tx, &ProductImage{}, "product_id = ?", productID)
		if err != nil {
			return fmt.Errorf("counting product images: %w", err)
		}
		if n >= MaxProductImages {
			return invalid("images", "a product can have at most %d images", MaxProductImages)
		}
		if err := tx.Create(img).Error; err != nil {
			return fmt.Errorf("creating product image: %w", err)
		}
		return nil
	})
}

func (r *ProductsRepository) DeleteImage(ctx context.Context, imageID uint) error {
	res := r.db.WithContext(ctx).Delete(&ProductImage{}, imageID)
	if res.Error != nil {
		return fmt.Errorf("deleting product image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrImageNotFound
	}
	return nil
}
