package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/aurumatelier/jewelry-catalog/app/api"
	"github.com/aurumatelier/jewelry-catalog/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Nullable tracks whether a key was present in the payload, so an explicit
// null clears a field while an absent key leaves it alone.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func nullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*v)
}

// ProductInput is the admin payload for products. Nil fields are left as
// they are on update and take their defaults on create. The optional
// measurements can be cleared with an explicit null.
type ProductInput struct {
	CollectionID     *uint                     `json:"collection_id"`
	CategoryID       *uint                     `json:"category_id"`
	Name             *string                   `json:"name"`
	Slug             *string                   `json:"slug"`
	Description      *string                   `json:"description"`
	Price            *decimal.Decimal          `json:"price"`
	Currency         *string                   `json:"currency"`
	SKU              *string                   `json:"sku"`
	Material         *models.Material          `json:"material"`
	MetalColor       *models.MetalColor        `json:"metal_color"`
	MetalPurityKarat Nullable[int]             `json:"metal_purity_karat"`
	WeightGrams      Nullable[decimal.Decimal] `json:"weight_grams"`
	Gemstone         *string                   `json:"gemstone"`
	GemstoneCarat    Nullable[decimal.Decimal] `json:"gemstone_carat"`
	RingSize         *string                   `json:"ring_size"`
	Stock            *int                      `json:"stock"`
	IsActive         *bool                     `json:"is_active"`
}

func (in ProductInput) Apply(p *models.Product) {
	if in.CollectionID != nil {
		p.CollectionID = *in.CollectionID
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Currency != nil {
		p.Currency = *in.Currency
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Material != nil {
		p.Material = *in.Material
	}
	if in.MetalColor != nil {
		p.MetalColor = *in.MetalColor
	}
	if in.MetalPurityKarat.Set {
		p.MetalPurityKarat = in.MetalPurityKarat.Value
	}
	if in.WeightGrams.Set {
		p.WeightGrams = nullDecimal(in.WeightGrams.Value)
	}
	if in.Gemstone != nil {
		p.Gemstone = *in.Gemstone
	}
	if in.GemstoneCarat.Set {
		p.GemstoneCarat = nullDecimal(in.GemstoneCarat.Value)
	}
	if in.RingSize != nil {
		p.RingSize = *in.RingSize
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

type ImageInput struct {
	Image   string `json:"image"`
	AltText string `json:"alt_text"`
}

type ProductStore interface {
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id uint, apply func(p *models.Product)) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
	AddImage(ctx context.Context, productID uint, img *models.ProductImage) error
	DeleteImage(ctx context.Context, imageID uint) error
}

type AdminHandler struct {
	repo ProductStore
	log  *zap.Logger
}

func NewAdminHandler(r ProductStore, log *zap.Logger) *AdminHandler {
	return &AdminHandler{repo: r, log: log}
}

// HandleGet returns a product by id, inactive ones included.
func (h *AdminHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to get product")
		return
	}
	api.OKResponse(w, product)
}

func (h *AdminHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input ProductInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}
	if input.Price == nil {
		api.WriteFieldError(w, http.StatusBadRequest, "is required", "price")
		return
	}

	product := &models.Product{IsActive: true}
	input.Apply(product)
	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to create product")
		return
	}
	api.WriteJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input ProductInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	product, err := h.repo.UpdateProduct(r.Context(), id, input.Apply)
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to update product")
		return
	}
	api.OKResponse(w, product)
}

func (h *AdminHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteProduct(r.Context(), id); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleAddImage(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input ImageInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	img := &models.ProductImage{Image: input.Image, AltText: input.AltText}
	if err := h.repo.AddImage(r.Context(), id, img); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to add image")
		return
	}
	api.WriteJSON(w, http.StatusCreated, img)
}

func (h *AdminHandler) HandleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteImage(r.Context(), id); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
