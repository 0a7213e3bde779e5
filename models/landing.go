package models

import "time"

const (
	// MaxLandingGoods bounds the simple featured section.
	MaxLandingGoods = 2
	// MaxLandingThreeItems bounds the positioned block; positions run 1..MaxLandingThreeItems.
	MaxLandingThreeItems = 3
)

// LandingConfig holds the curated picks for the storefront's landing page.
// Only one row is expected; nothing in the schema enforces that, so readers
// take the row with the lowest id.
type LandingConfig struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	Goods      []Product          `gorm:"many2many:landing_config_goods;constraint:OnDelete:CASCADE" json:"goods"`
	ThreeItems []LandingThreeItem `gorm:"foreignKey:ConfigID;constraint:OnDelete:CASCADE" json:"three_items"`
	CreatedAt  time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (c *LandingConfig) TableName() string {
	return "landing_configs"
}

// LandingThreeItem places one product at one position of the three-items block.
type LandingThreeItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ConfigID  uint      `gorm:"not null;uniqueIndex:idx_three_config_position;uniqueIndex:idx_three_config_product" json:"config_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_three_config_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product"`
	Position  int       `gorm:"not null;uniqueIndex:idx_three_config_position" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *LandingThreeItem) TableName() string {
	return "landing_three_items"
}

// LandingPage is the resolved public payload of the landing page.
type LandingPage struct {
	Goods []Product
	Three []Product
}
