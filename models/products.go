package models

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxProductImages is the number of images the admin may attach to one product.
const MaxProductImages = 5

// Material is the primary metal a piece is made of.
type Material string

const (
	MaterialGold     Material = "gold"
	MaterialSilver   Material = "silver"
	MaterialPlatinum Material = "platinum"
	MaterialOther    Material = "other"
)

func (m Material) Valid() bool {
	switch m {
	case MaterialGold, MaterialSilver, MaterialPlatinum, MaterialOther:
		return true
	}
	return false
}

// MetalColor is the visible tone of the metal.
type MetalColor string

const (
	MetalColorYellow MetalColor = "yellow"
	MetalColorWhite  MetalColor = "white"
	MetalColorRose   MetalColor = "rose"
	MetalColorMixed  MetalColor = "mixed"
	MetalColorNone   MetalColor = "none"
)

func (c MetalColor) Valid() bool {
	switch c {
	case MetalColorYellow, MetalColorWhite, MetalColorRose, MetalColorMixed, MetalColorNone:
		return true
	}
	return false
}

// Product represents a piece of jewelry in the catalog.
// It belongs to exactly one collection and one category; neither can be
// deleted while the product references it.
type Product struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CollectionID uint       `gorm:"not null;index" json:"collection_id"`
	Collection   Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT" json:"collection"`
	CategoryID   uint       `gorm:"not null;index" json:"category_id"`
	Category     Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category"`

	Name        string          `gorm:"size:250;not null" json:"name"`
	Slug        string          `gorm:"size:270;uniqueIndex;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Currency    string          `gorm:"size:3;not null" json:"currency"`
	SKU         string          `gorm:"column:sku;size:64;uniqueIndex;not null" json:"sku"`

	Material         Material            `gorm:"size:20;not null" json:"material"`
	MetalColor       MetalColor          `gorm:"size:10;not null" json:"metal_color"`
	MetalPurityKarat *int                `json:"metal_purity_karat"`
	WeightGrams      decimal.NullDecimal `gorm:"type:decimal(7,2)" json:"weight_grams"`
	Gemstone         string              `gorm:"size:120" json:"gemstone,omitempty"`
	GemstoneCarat    decimal.NullDecimal `gorm:"type:decimal(6,3)" json:"gemstone_carat"`
	RingSize         string              `gorm:"size:16" json:"ring_size,omitempty"`

	Stock    int  `gorm:"not null" json:"stock"`
	IsActive bool `gorm:"not null;index" json:"is_active"`

	Images    []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (p *Product) TableName() string {
	return "products"
}

// ApplyDefaults fills the fields a new product gets when the admin leaves them blank.
func (p *Product) ApplyDefaults() {
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Material == "" {
		p.Material = MaterialGold
	}
	if p.MetalColor == "" {
		p.MetalColor = MetalColorNone
	}
}

// ProductImage is one photo of a product. Images are shown in creation order.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Image     string    `gorm:"size:255;not null" json:"image"`
	AltText   string    `gorm:"size:200" json:"alt_text,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *ProductImage) TableName() string {
	return "product_images"
}

// ImageUploadPath places a bare file name under the product's image folder.
// References that already contain a directory are returned unchanged.
func ImageUploadPath(productID uint, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.Contains(ref, "/") {
		return ref
	}
	return path.Join("products", strconv.FormatUint(uint64(productID), 10), ref)
}
