package categories

import (
	"context"
	"net/http"

	"github.com/aurumatelier/jewelry-catalog/app/api"
	"github.com/aurumatelier/jewelry-catalog/models"
	"go.uber.org/zap"
)

type CategoryResponse struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ProductCount int64  `json:"product_count"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.CategorySummary, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uint, changes models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *zap.Logger
}

func NewCategoryHandler(r CategoryProvider, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.DomainError(w, r, h.log, err, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:           c.ID,
			Slug:         c.Slug,
			Name:         c.Name,
			Description:  c.Description,
			ProductCount: c.ProductCount,
		}
	}
	api.OKResponse(w, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	category := &models.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to create category")
		return
	}
	api.WriteJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input CategoryInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	category, err := h.repo.UpdateCategory(r.Context(), id, models.Category{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
	})
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to update category")
		return
	}
	api.OKResponse(w, category)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
