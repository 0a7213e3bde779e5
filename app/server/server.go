package server

import (
	"net/http"
	"time"

	"github.com/aurumatelier/jewelry-catalog/app/api"
	"github.com/aurumatelier/jewelry-catalog/app/catalog"
	"github.com/aurumatelier/jewelry-catalog/app/categories"
	"github.com/aurumatelier/jewelry-catalog/app/collections"
	"github.com/aurumatelier/jewelry-catalog/app/landing"
	"github.com/aurumatelier/jewelry-catalog/config"
	"github.com/aurumatelier/jewelry-catalog/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers groups every HTTP handler the router dispatches to.
type Handlers struct {
	Catalog     *catalog.CatalogHandler
	Products    *catalog.AdminHandler
	Collections *collections.CollectionHandler
	Categories  *categories.CategoryHandler
	Landing     *landing.LandingHandler
}

// NewHandlers wires the handlers to repositories over db.
func NewHandlers(db *gorm.DB, log *zap.Logger) Handlers {
	products := models.NewProductsRepository(db)
	return Handlers{
		Catalog:     catalog.NewCatalogHandler(products, log),
		Products:    catalog.NewAdminHandler(products, log),
		Collections: collections.NewCollectionHandler(models.NewCollectionsRepository(db), log),
		Categories:  categories.NewCategoryHandler(models.NewCategoriesRepository(db), log),
		Landing:     landing.NewLandingHandler(models.NewLandingRepository(db), log),
	}
}

// NewRouter builds the route table wrapped in recovery and request logging.
func NewRouter(h Handlers, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Landing.HandleGet)
	mux.HandleFunc("GET /catalog/{$}", h.Catalog.HandleGet)
	mux.HandleFunc("GET /collections/{$}", h.Collections.HandleGetAll)
	mux.HandleFunc("GET /categories/{$}", h.Categories.HandleGetAll)
	mux.HandleFunc("GET /product/{slug}/{$}", h.Catalog.HandleGetProduct)

	mux.HandleFunc("POST /admin/collections/{$}", h.Collections.HandleCreate)
	mux.HandleFunc("GET /admin/collections/{id}/{$}", h.Collections.HandleAdminGet)
	mux.HandleFunc("PUT /admin/collections/{id}/{$}", h.Collections.HandleUpdate)
	mux.HandleFunc("DELETE /admin/collections/{id}/{$}", h.Collections.HandleDelete)

	mux.HandleFunc("POST /admin/categories/{$}", h.Categories.HandleCreate)
	mux.HandleFunc("PUT /admin/categories/{id}/{$}", h.Categories.HandleUpdate)
	mux.HandleFunc("DELETE /admin/categories/{id}/{$}", h.Categories.HandleDelete)

	mux.HandleFunc("POST /admin/products/{$}", h.Products.HandleCreate)
	mux.HandleFunc("GET /admin/products/{id}/{$}", h.Products.HandleGet)
	mux.HandleFunc("PUT /admin/products/{id}/{$}", h.Products.HandleUpdate)
	mux.HandleFunc("DELETE /admin/products/{id}/{$}", h.Products.HandleDelete)
	mux.HandleFunc("POST /admin/products/{id}/images/{$}", h.Products.HandleAddImage)
	mux.HandleFunc("DELETE /admin/images/{id}/{$}", h.Products.HandleDeleteImage)

	mux.HandleFunc("GET /admin/landing/{$}", h.Landing.HandleAdminGet)
	mux.HandleFunc("PUT /admin/landing/goods/{$}", h.Landing.HandleSetGoods)
	mux.HandleFunc("PUT /admin/landing/three/{$}", h.Landing.HandleSetThree)

	return api.WithRequestLogging(log, api.WithRecovery(log, mux))
}

func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
}
