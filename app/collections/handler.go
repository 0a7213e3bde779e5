package collections

import (
	"context"
	"net/http"

	"github.com/aurumatelier/jewelry-catalog/app/api"
	"github.com/aurumatelier/jewelry-catalog/models"
	"go.uber.org/zap"
)

type CollectionResponse struct {
	ID           uint   `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Photo        string `json:"photo,omitempty"`
	QuickLink    string `json:"quick_link,omitempty"`
	ProductCount int64  `json:"product_count"`
}

type CollectionInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Photo       string `json:"photo"`
	QuickLink   string `json:"quick_link"`
}

func (in CollectionInput) model() models.Collection {
	return models.Collection{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Photo:       in.Photo,
		QuickLink:   in.QuickLink,
	}
}

type CollectionProvider interface {
	GetAllCollections(ctx context.Context) ([]models.CollectionSummary, error)
	GetByID(ctx context.Context, id uint) (*models.Collection, error)
	CreateCollection(ctx context.Context, collection *models.Collection) error
	UpdateCollection(ctx context.Context, id uint, changes models.Collection) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id uint) error
}

type CollectionHandler struct {
	repo CollectionProvider
	log  *zap.Logger
}

func NewCollectionHandler(r CollectionProvider, log *zap.Logger) *CollectionHandler {
	return &CollectionHandler{repo: r, log: log}
}

// HandleGetAll lists every collection with the number of active products in it.
func (h *CollectionHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	collections, err := h.repo.GetAllCollections(r.Context())
	if err != nil {
		api.DomainError(w, r, h.log, err, "failed to fetch collections")
		return
	}

	response := make([]CollectionResponse, len(collections))
	for i, c := range collections {
		response[i] = CollectionResponse{
			ID:           c.ID,
			Slug:         c.Slug,
			Name:         c.Name,
			Description:  c.Description,
			Photo:        c.Photo,
			QuickLink:    c.QuickLink,
			ProductCount: c.ProductCount,
		}
	}
	api.OKResponse(w, response)
}

func (h *CollectionHandler) HandleAdminGet(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	collection, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to get collection")
		return
	}
	api.OKResponse(w, collection)
}

func (h *CollectionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input CollectionInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	collection := input.model()
	if err := h.repo.CreateCollection(r.Context(), &collection); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to create collection")
		return
	}
	api.WriteJSON(w, http.StatusCreated, collection)
}

func (h *CollectionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	var input CollectionInput
	if !api.DecodeJSON(w, r, &input) {
		return
	}

	collection, err := h.repo.UpdateCollection(r.Context(), id, input.model())
	if err != nil {
		api.DomainError(w, r, h.log, err, "Failed to update collection")
		return
	}
	api.OKResponse(w, collection)
}

func (h *CollectionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.PathID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteCollection(r.Context(), id); err != nil {
		api.DomainError(w, r, h.log, err, "Failed to delete collection")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
