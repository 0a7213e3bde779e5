// Package fixtures loads a catalog described in YAML through the same
// validated repository writes the admin API uses.
package fixtures

import (
	"context"
	"fmt"
	"os"

	"github.com/aurumatelier/jewelry-catalog/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type File struct {
	Collections []Collection `yaml:"collections"`
	Categories  []Category   `yaml:"categories"`
	Products    []Product    `yaml:"products"`
	Landing     *Landing     `yaml:"landing"`
}

type Collection struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Photo       string `yaml:"photo"`
	QuickLink   string `yaml:"quick_link"`
}

type Category struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// Product refers to its collection and category by slug.
type Product struct {
	Name             string  `yaml:"name"`
	Slug             string  `yaml:"slug"`
	Collection       string  `yaml:"collection"`
	Category         string  `yaml:"category"`
	Description      string  `yaml:"description"`
	Price            string  `yaml:"price"`
	Currency         string  `yaml:"currency"`
	SKU              string  `yaml:"sku"`
	Material         string  `yaml:"material"`
	MetalColor       string  `yaml:"metal_color"`
	MetalPurityKarat *int    `yaml:"metal_purity_karat"`
	WeightGrams      string  `yaml:"weight_grams"`
	Gemstone         string  `yaml:"gemstone"`
	GemstoneCarat    string  `yaml:"gemstone_carat"`
	RingSize         string  `yaml:"ring_size"`
	Stock            int     `yaml:"stock"`
	Active           *bool   `yaml:"active"`
	Images           []Image `yaml:"images"`
}

type Image struct {
	Image   string `yaml:"image"`
	AltText string `yaml:"alt_text"`
}

// Landing refers to products by SKU.
type Landing struct {
	Goods []string    `yaml:"goods"`
	Three []ThreeItem `yaml:"three"`
}

type ThreeItem struct {
	Position int    `yaml:"position"`
	Product  string `yaml:"product"`
}

// Summary counts what Apply created.
type Summary struct {
	Collections int
	Categories  int
	Products    int
	Images      int
	Landing     bool
}

func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	return &f, nil
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s %q: %w", field, value, err)
	}
	return d, nil
}

func parseNullDecimal(field, value string) (decimal.NullDecimal, error) {
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := parseDecimal(field, value)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func (p Product) model(collections, categories map[string]uint) (*models.Product, error) {
	collectionID, ok := collections[p.Collection]
	if !ok {
		return nil, fmt.Errorf("product %q: unknown collection %q", p.SKU, p.Collection)
	}
	categoryID, ok := categories[p.Category]
	if !ok {
		return nil, fmt.Errorf("product %q: unknown category %q", p.SKU, p.Category)
	}
	price, err := parseDecimal("price", p.Price)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", p.SKU, err)
	}
	weight, err := parseNullDecimal("weight_grams", p.WeightGrams)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", p.SKU, err)
	}
	carat, err := parseNullDecimal("gemstone_carat", p.GemstoneCarat)
	if err != nil {
		return nil, fmt.Errorf("product %q: %w", p.SKU, err)
	}
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return &models.Product{
		CollectionID:     collectionID,
		CategoryID:       categoryID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		Price:            price,
		Currency:         p.Currency,
		SKU:              p.SKU,
		Material:         models.Material(p.Material),
		MetalColor:       models.MetalColor(p.MetalColor),
		MetalPurityKarat: p.MetalPurityKarat,
		WeightGrams:      weight,
		Gemstone:         p.Gemstone,
		GemstoneCarat:    carat,
		RingSize:         p.RingSize,
		Stock:            p.Stock,
		IsActive:         active,
	}, nil
}

// Apply writes the fixture in dependency order. It stops at the first
// rejected row; rows written before it stay.
func Apply(ctx context.Context, db *gorm.DB, f *File) (Summary, error) {
	var sum Summary
	collectionsRepo := models.NewCollectionsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)
	landingRepo := models.NewLandingRepository(db)

	collectionIDs := make(map[string]uint, len(f.Collections))
	for _, c := range f.Collections {
		m := &models.Collection{Name: c.Name, Slug: c.Slug, Description: c.Description, Photo: c.Photo, QuickLink: c.QuickLink}
		if err := collectionsRepo.CreateCollection(ctx, m); err != nil {
			return sum, fmt.Errorf("collection %q: %w", c.Name, err)
		}
		collectionIDs[m.Slug] = m.ID
		sum.Collections++
	}

	categoryIDs := make(map[string]uint, len(f.Categories))
	for _, c := range f.Categories {
		m := &models.Category{Name: c.Name, Slug: c.Slug, Description: c.Description}
		if err := categoriesRepo.CreateCategory(ctx, m); err != nil {
			return sum, fmt.Errorf("category %q: %w", c.Name, err)
		}
		categoryIDs[m.Slug] = m.ID
		sum.Categories++
	}

	productIDs := make(map[string]uint, len(f.Products))
	for _, p := range f.Products {
		m, err := p.model(collectionIDs, categoryIDs)
		if err != nil {
			return sum, err
		}
		if err := productsRepo.CreateProduct(ctx, m); err != nil {
			return sum, fmt.Errorf("product %q: %w", p.SKU, err)
		}
		productIDs[m.SKU] = m.ID
		sum.Products++

		for _, img := range p.Images {
			if err := productsRepo.AddImage(ctx, m.ID, &models.ProductImage{Image: img.Image, AltText: img.AltText}); err != nil {
				return sum, fmt.Errorf("product %q image %q: %w", p.SKU, img.Image, err)
			}
			sum.Images++
		}
	}

	if f.Landing == nil {
		return sum, nil
	}
	lookup := func(sku string) (uint, error) {
		id, ok := productIDs[sku]
		if !ok {
			return 0, fmt.Errorf("landing: unknown product %q", sku)
		}
		return id, nil
	}

	if len(f.Landing.Goods) > 0 {
		goods := make([]uint, 0, len(f.Landing.Goods))
		for _, sku := range f.Landing.Goods {
			id, err := lookup(sku)
			if err != nil {
				return sum, err
			}
			goods = append(goods, id)
		}
		if _, err := landingRepo.SetGoods(ctx, goods); err != nil {
			return sum, fmt.Errorf("landing goods: %w", err)
		}
		sum.Landing = true
	}

	if len(f.Landing.Three) > 0 {
		items := make([]models.ThreeItemCandidate, 0, len(f.Landing.Three))
		for _, it := range f.Landing.Three {
			id, err := lookup(it.Product)
			if err != nil {
				return sum, err
			}
			items = append(items, models.ThreeItemCandidate{Position: it.Position, ProductID: id})
		}
		if _, err := landingRepo.SetThreeItems(ctx, items); err != nil {
			return sum, fmt.Errorf("landing three-items: %w", err)
		}
		sum.Landing = true
	}
	return sum, nil
}
