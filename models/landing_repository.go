package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LandingRepository struct {
	db *gorm.DB
}

func NewLandingRepository(db *gorm.DB) *LandingRepository {
	return &LandingRepository{db: db}
}

// firstConfig returns the configuration with the lowest id, or nil when none exists.
func firstConfig(tx *gorm.DB) (*LandingConfig, error) {
	var cfg LandingConfig
	if err := tx.Order("id ASC").First(&cfg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// lockedConfig returns the configuration locked for update, creating it when missing.
func lockedConfig(tx *gorm.DB) (*LandingConfig, error) {
	cfg, err := firstConfig(tx.Clauses(clause.Locking{Strength: "UPDATE"}))
	if err != nil || cfg != nil {
		return cfg, err
	}
	cfg = &LandingConfig{}
	if err := tx.Create(cfg).Error; err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve builds the public landing payload: the active featured goods and
// the active three-items products in position order. With no configuration
// both lists are empty.
func (r *LandingRepository) Resolve(ctx context.Context) (*LandingPage, error) {
	page := &LandingPage{Goods: []Product{}, Three: []Product{}}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := firstConfig(tx)
		if err != nil || cfg == nil {
			return err
		}

		err = withRefs(tx).
			Joins("JOIN landing_config_goods ON landing_config_goods.product_id = products.id").
			Where("landing_config_goods.landing_config_id = ? AND products.is_active = ?", cfg.ID, true).
			Order("products.id ASC").
			Limit(MaxLandingGoods).
			Find(&page.Goods).Error
		if err != nil {
			return err
		}

		var items []LandingThreeItem
		err = tx.Joins("JOIN products ON products.id = landing_three_items.product_id").
			Preload("Product.Collection").
			Preload("Product.Category").
			Preload("Product.Images", preloadImages).
			Where("landing_three_items.config_id = ? AND products.is_active = ?", cfg.ID, true).
			Order("landing_three_items.position ASC").
			Find(&items).Error
		if err != nil {
			return err
		}
		for _, it := range items {
			page.Three = append(page.Three, it.Product)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolving landing page: %w", err)
	}
	return page, nil
}

// Current returns the stored configuration with every linked product,
// active or not, for the admin view. It returns nil when none exists.
func (r *LandingRepository) Current(ctx context.Context) (*LandingConfig, error) {
	var cfg *LandingConfig
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		cfg, err = loadConfig(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading landing config: %w", err)
	}
	return cfg, nil
}

func loadConfig(tx *gorm.DB) (*LandingConfig, error) {
	cfg, err := firstConfig(tx)
	if err != nil || cfg == nil {
		return cfg, err
	}
	err = tx.
		Preload("Goods", func(db *gorm.DB) *gorm.DB { return db.Order("products.id ASC") }).
		Preload("ThreeItems", func(db *gorm.DB) *gorm.DB { return db.Order("landing_three_items.position ASC") }).
		Preload("ThreeItems.Product").
		First(cfg, cfg.ID).Error
	return cfg, err
}

// SetGoods replaces the featured goods with productIDs. More than
// MaxLandingGoods products, or an unknown product, rejects the whole save.
func (r *LandingRepository) SetGoods(ctx context.Context, productIDs []uint) (*LandingConfig, error) {
	ids, err := ValidateLandingGoods(productIDs)
	if err != nil {
		return nil, err
	}

	var cfg *LandingConfig
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockedConfig(tx)
		if err != nil {
			return err
		}
		goods := []Product{}
		if len(ids) > 0 {
			if err := tx.Where("id IN ?", ids).Find(&goods).Error; err != nil {
				return err
			}
		}
		if len(goods) != len(ids) {
			return invalid("goods", "one or more selected products do not exist")
		}
		goodsAssoc := tx.Model(locked).Omit("Goods.*").Association("Goods")
		if len(goods) == 0 {
			err = goodsAssoc.Clear()
		} else {
			err = goodsAssoc.Replace(goods)
		}
		if err != nil {
			return err
		}
		cfg, err = loadConfig(tx)
		return err
	})
	if err != nil {
		return nil, landingError("saving landing goods", err)
	}
	return cfg, nil
}

// SetThreeItems replaces the three-items block with the surviving candidates.
// Every referenced product must exist and be active. Nothing is written when
// any rule fails.
func (r *LandingRepository) SetThreeItems(ctx context.Context, candidates []ThreeItemCandidate) (*LandingConfig, error) {
	kept, err := ValidateThreeItems(candidates)
	if err != nil {
		return nil, err
	}

	var cfg *LandingConfig
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockedConfig(tx)
		if err != nil {
			return err
		}

		ids := make([]uint, len(kept))
		for i, c := range kept {
			ids[i] = c.ProductID
		}
		var products []Product
		if err := tx.Where("id IN ?", ids).Find(&products).Error; err != nil {
			return err
		}
		active := make(map[uint]bool, len(products))
		found := make(map[uint]bool, len(products))
		for _, p := range products {
			found[p.ID] = true
			active[p.ID] = p.IsActive
		}
		for _, id := range ids {
			if !found[id] {
				return invalid("product_id", "product %d does not exist", id)
			}
			if !active[id] {
				return invalid("product_id", "product %d is not active", id)
			}
		}

		if err := tx.Where("config_id = ?", locked.ID).Delete(&LandingThreeItem{}).Error; err != nil {
			return err
		}
		items := make([]LandingThreeItem, len(kept))
		for i, c := range kept {
			items[i] = LandingThreeItem{ConfigID: locked.ID, ProductID: c.ProductID, Position: c.Position}
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
		cfg, err = loadConfig(tx)
		return err
	})
	if err != nil {
		return nil, landingError("saving landing three-items", err)
	}
	return cfg, nil
}

func landingError(op string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return storeError(op, "three_products", err)
}
