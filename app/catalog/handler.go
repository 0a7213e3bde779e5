package catalog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/aurumatelier/jewelry-catalog/app/api"
	"github.com/aurumatelier/jewelry-catalog/models"
	"go.uber.org/zap"
)

type Response struct {
	TotalResults        int                 `json:"total_results"`
	Products            []Product           `json:"products"`
	Collections         []models.FacetCount `json:"collections"`
	Categories          []models.FacetCount `json:"categories"`
	SelectedCollections []string            `json:"selected_collections"`
	SelectedCategories  []string            `json:"selected_categories"`
}

type Reference struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Image struct {
	Image   string `json:"image"`
	AltText string `json:"alt_text,omitempty"`
}

type Product struct {
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	Material   string    `json:"material"`
	MetalColor string    `json:"metal_color"`
	Collection Reference `json:"collection"`
	Category   Reference `json:"category"`
	Images     []Image   `json:"images"`
}

type ProductDetail struct {
	Product
	SKU              string   `json:"sku"`
	Description      string   `json:"description"`
	MetalPurityKarat *int     `json:"metal_purity_karat"`
	WeightGrams      *float64 `json:"weight_grams"`
	Gemstone         string   `json:"gemstone,omitempty"`
	GemstoneCarat    *float64 `json:"gemstone_carat"`
	RingSize         string   `json:"ring_size,omitempty"`
	Stock            int      `json:"stock"`
	IsActive         bool     `json:"is_active"`
}

type ProductProvider interface {
	Browse(ctx context.Context, filters models.CatalogFilters) (*models.CatalogPage, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
	log  *zap.Logger
}

func NewCatalogHandler(r ProductProvider, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log,
	}
}

// selected returns the distinct non-empty values of a repeated query parameter.
func selected(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func mapProduct(p models.Product) Product {
	images := make([]Image, len(p.Images))
	for i, img := range p.Images {
		images[i] = Image{Image: img.Image, AltText: img.AltText}
	}
	return Product{
		Slug:       p.Slug,
		Name:       p.Name,
		Price:      p.Price.InexactFloat64(),
		Currency:   p.Currency,
		Material:   string(p.Material),
		MetalColor: string(p.MetalColor),
		Collection: Reference{ID: p.Collection.ID, Slug: p.Collection.Slug, Name: p.Collection.Name},
		Category:   Reference{ID: p.Category.ID, Slug: p.Category.Slug, Name: p.Category.Name},
		Images:     images,
	}
}

// MapProducts converts catalog rows into their public JSON shape.
func MapProducts(products []models.Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = mapProduct(p)
	}
	return out
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := models.CatalogFilters{
		CollectionSlugs: selected(query["collection"]),
		CategorySlugs:   selected(query["category"]),
	}

	// Pagination is optional; without limit every match is returned.
	if oStr := query.Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			filters.Offset = o
		}
	}
	if lStr := query.Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				filters.Limit = 1
			} else if l > 100 {
				filters.Limit = 100
			} else {
				filters.Limit = l
			}
		}
	}

	page, err := h.repo.Browse(r.Context(), filters)
	if err != nil {
		api.DomainError(w, r, h.log, err, "failed to get products")
		return
	}

	api.OKResponse(w, Response{
		TotalResults:        int(page.Total),
		Products:            MapProducts(page.Products),
		Collections:         page.Collections,
		Categories:          page.Categories,
		SelectedCollections: filters.CollectionSlugs,
		SelectedCategories:  filters.CategorySlugs,
	})
}

func optionalFloat(valid bool, f float64) *float64 {
	if !valid {
		return nil
	}
	return &f
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	product, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		api.DomainError(w, r, h.log, err, "failed to get product")
		return
	}

	api.OKResponse(w, ProductDetail{
		Product:          mapProduct(*product),
		SKU:              product.SKU,
		Description:      product.Description,
		MetalPurityKarat: product.MetalPurityKarat,
		WeightGrams:      optionalFloat(product.WeightGrams.Valid, product.WeightGrams.Decimal.InexactFloat64()),
		Gemstone:         product.Gemstone,
		GemstoneCarat:    optionalFloat(product.GemstoneCarat.Valid, product.GemstoneCarat.Decimal.InexactFloat64()),
		RingSize:         product.RingSize,
		Stock:            product.Stock,
		IsActive:         product.IsActive,
	})
}
