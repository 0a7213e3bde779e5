package landing

import (
	"context"
	"net/http"

	"github.com/aurumatelier/jewelry-catalog/app/api"
	"github.com/aurumatelier/jewelry-catalog/app/catalog"
	"github.com/aurumatelier/jewelry-catalog/models"
	"go.uber.org/zap"
)

type Response struct {
	LandingGoods []catalog.Product `json:"landing_goods"`
	LandingThree []catalog.Product `json:"landing_three"`
}

type ThreeItem struct {
	Position  int    `json:"position"`
	ProductID uint   `json:"product_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

type GoodsItem struct {
	ProductID uint   `json:"product_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}

// AdminResponse shows the stored configuration, inactive products included.
type AdminResponse struct {
	ID         uint        `json:"id,omitempty"`
	Configured bool        `json:"configured"`
	GoodsCount int         `json:"goods_count"`
	Goods      []GoodsItem `json:"goods"`
	ThreeItems []ThreeItem `json:"three_items"`
}

type GoodsInput struct {
	ProductIDs []uint `json:"product_ids"`
}

type ThreeInput struct {
	Items []models.ThreeItemCandidate `json:"items"`
}

type LandingProvider interface {
	Resolve(ctx context.Context) (*models.LandingPage, error)
	Current(ctx context.Context) (*models.LandingConfig, error)
	SetGoods(ctx context.Context, productIDs []uint) (*models.LandingConfig, error)
	SetThreeItems(ctx context.Context, items []models.ThreeItemCandidate) (*models.LandingConfig, error)
}

type LandingHandler struct {
	repo LandingProvider
	log  *zap.Logger
}

func NewLandingHandler(r LandingProvider, log *zap.Logger) *LandingHandler {
	return &LandingHandler{repo: r, log: log}
}

// HandleGet serves the public landing payload.
func (h *LandingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	page, err := h.repo.Resolve(r.Context())
	if err != nil {
		api.DomainError(w, r, h.log, err, "failed to load landing page")
		return
	}
	api.OKResponse(w, Response{
		LandingGoods: catalog.MapProducts(page.Goods),
		LandingThree: catalog.MapProducts(page.Three),
	})
}

func adminResponse(cfg *models.LandingConfig) AdminResponse {
	resp := AdminResponse{Goods: []GoodsItem{}, ThreeItems: []ThreeItem{}}
	if cfg == nil {
		return resp
	}
	resp.ID = cfg.ID
	resp.Configured = true
	resp.GoodsCount = len(cfg.Goods)
	for _, p := range cfg.Goods {
		resp.Goods = append(resp.Goods, GoodsItem{ProductID: p.ID, Slug: p.Slug, Name: p.Name, IsActive: p.IsActive})
	}
	for _, it := range cfg.ThreeItems {
		resp.ThreeItems = append(resp.ThreeItems, ThreeItem{
			Position:  it.Position,
			ProductID: it.ProductID,
			Slug:      it.Product.Slug,
			Name:      it.Product.Name,
			IsActive:  it.Product.IsActive,
		})
	}
	return resp
}

func (h *LandingHandler) HandleAdminGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.repo.Current(r.Context())
	if err != nil {
		api.DomainError(w, r, h.log, err, "failed to load landing configuration")
		return
	}
	api.OKResponse(w, adminResponse(cfg))
}

func (h *LandingHandler) HandleSetGoods(w http.ResponseWriter, r *http.Request) {
	var input GoodsInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}
	cfg, err := h.repo.SetGoods(r.Context(), input.ProductIDs)
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to save landing goods")
		return
	}
	api.OKResponse(w, adminResponse(cfg))
}

func (h *LandingHandler) HandleSetThree(w http.ResponseWriter, r *http.Request) {
	var input ThreeInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}
	cfg, err := h.repo.SetThreeItems(r.Context(), input.Items)
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to save landing three-items")
		return
	}
	api.OKResponse(w, adminResponse(cfg))
}
