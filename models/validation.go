package models

import (
	"sort"
	"strings"
	"unicode/utf8"
)

func checkLen(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}

func checkSlug(slug string, max int) error {
	if slug == "" {
		return invalid("slug", "could not be derived from the name")
	}
	if Slugify(slug) != slug {
		return invalid("slug", "may contain only lowercase letters, digits and single hyphens")
	}
	return checkLen("slug", slug, max)
}

// ValidateCollection checks a collection after slug assignment.
func ValidateCollection(c *Collection) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "is required")
	}
	if err := checkLen("name", c.Name, 200); err != nil {
		return err
	}
	if err := checkLen("quick_link", c.QuickLink, 200); err != nil {
		return err
	}
	if c.QuickLink != "" && !strings.HasPrefix(c.QuickLink, "http://") && !strings.HasPrefix(c.QuickLink, "https://") {
		return invalid("quick_link", "must be an http or https URL")
	}
	return checkSlug(c.Slug, 220)
}

// ValidateCategory checks a category after slug assignment.
func ValidateCategory(c *Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "is required")
	}
	if err := checkLen("name", c.Name, 200); err != nil {
		return err
	}
	return checkSlug(c.Slug, 220)
}

// ValidateProduct checks field-level rules of a product after defaults and
// slug assignment. Reference existence is checked by the repository.
func ValidateProduct(p *Product) error {
	switch {
	case p.CollectionID == 0:
		return invalid("collection_id", "is required")
	case p.CategoryID == 0:
		return invalid("category_id", "is required")
	case strings.TrimSpace(p.Name) == "":
		return invalid("name", "is required")
	case strings.TrimSpace(p.SKU) == "":
		return invalid("sku", "is required")
	case p.Price.IsNegative():
		return invalid("price", "must not be negative")
	case len(p.Currency) != 3 || strings.ToUpper(p.Currency) != p.Currency:
		return invalid("currency", "must be a 3-letter uppercase code")
	case !p.Material.Valid():
		return invalid("material", "%q is not one of gold, silver, platinum, other", p.Material)
	case !p.MetalColor.Valid():
		return invalid("metal_color", "%q is not one of yellow, white, rose, mixed, none", p.MetalColor)
	case p.MetalPurityKarat != nil && (*p.MetalPurityKarat < 1 || *p.MetalPurityKarat > 24):
		return invalid("metal_purity_karat", "must be between 1 and 24")
	case p.WeightGrams.Valid && p.WeightGrams.Decimal.IsNegative():
		return invalid("weight_grams", "must not be negative")
	case p.GemstoneCarat.Valid && p.GemstoneCarat.Decimal.IsNegative():
		return invalid("gemstone_carat", "must not be negative")
	case p.Stock < 0:
		return invalid("stock", "must not be negative")
	}
	for _, c := range []struct {
		field, value string
		max          int
	}{
		{"name", p.Name, 250},
		{"sku", p.SKU, 64},
		{"gemstone", p.Gemstone, 120},
		{"ring_size", p.RingSize, 16},
	} {
		if err := checkLen(c.field, c.value, c.max); err != nil {
			return err
		}
	}
	return checkSlug(p.Slug, 270)
}

// ValidateLandingGoods checks the featured-goods selection and returns the
// distinct product ids in their submitted order.
func ValidateLandingGoods(productIDs []uint) ([]uint, error) {
	seen := make(map[uint]bool, len(productIDs))
	ids := make([]uint, 0, len(productIDs))
	for _, id := range productIDs {
		if id == 0 {
			return nil, invalid("goods", "product id is required")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	if len(ids) > MaxLandingGoods {
		return nil, invalid("goods", "You can select at most %d products.", MaxLandingGoods)
	}
	return ids, nil
}

// ThreeItemCandidate is one submitted row of the three-items block.
// Rows marked Delete are dropped before any rule is checked.
type ThreeItemCandidate struct {
	Position  int  `json:"position"`
	ProductID uint `json:"product_id"`
	Delete    bool `json:"delete"`
}

// ValidateThreeItems checks a submitted three-items block and returns the
// surviving rows ordered by position.
func ValidateThreeItems(candidates []ThreeItemCandidate) ([]ThreeItemCandidate, error) {
	kept := make([]ThreeItemCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Delete {
			continue
		}
		if c.Position < 1 || c.Position > MaxLandingThreeItems {
			return nil, invalid("position", "%d is not a valid position; choose 1, 2 or 3", c.Position)
		}
		if c.ProductID == 0 {
			return nil, invalid("product_id", "is required")
		}
		kept = append(kept, c)
	}

	if len(kept) < 1 {
		return nil, invalid("three_products", "at least 1 item is required")
	}
	if len(kept) > MaxLandingThreeItems {
		return nil, invalid("three_products", "at most %d items are allowed", MaxLandingThreeItems)
	}

	positions := make(map[int]bool, len(kept))
	for _, c := range kept {
		if positions[c.Position] {
			return nil, invalid("position", "position %d is used more than once", c.Position)
		}
		positions[c.Position] = true
	}
	products := make(map[uint]bool, len(kept))
	for _, c := range kept {
		if products[c.ProductID] {
			return nil, invalid("product_id", "product %d is used more than once", c.ProductID)
		}
		products[c.ProductID] = true
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Position < kept[j].Position })
	return kept, nil
}

// ValidateImage checks one image row before it is attached.
func ValidateImage(img *ProductImage) error {
	if strings.TrimSpace(img.Image) == "" {
		return invalid("image", "is required")
	}
	if err := checkLen("image", img.Image, 255); err != nil {
		return err
	}
	return checkLen("alt_text", img.AltText, 200)
}
