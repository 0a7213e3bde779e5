package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aurumatelier/jewelry-catalog/app/database"
	"github.com/aurumatelier/jewelry-catalog/app/fixtures"
	"github.com/aurumatelier/jewelry-catalog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	f, err := fixtures.Load("../../fixtures/catalog.yaml")
	require.NoError(t, err)
	_, err = fixtures.Apply(context.Background(), db, f)
	require.NoError(t, err)

	log := zap.NewNop()
	return NewRouter(NewHandlers(db, log), log)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestPublicRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, "GET", "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	body := decode(t, rec)
	assert.Len(t, body["landing_goods"], 2)
	assert.Len(t, body["landing_three"], 3)

	rec = do(t, h, "GET", "/catalog/?collection=heritage&category=rings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, float64(0), body["total_results"], "the only heritage ring is inactive")
	assert.Equal(t, []any{"heritage"}, body["selected_collections"])

	rec = do(t, h, "GET", "/catalog/?collection=bridal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["total_results"])

	rec = do(t, h, "GET", "/collections/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, "GET", "/categories/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, "GET", "/product/solitaire-ring/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BR-RNG-001", decode(t, rec)["sku"])

	rec = do(t, h, "GET", "/product/no-such-ring/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, "POST", "/catalog/", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, "POST", "/admin/collections/", `{"name":"Gold Rings"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	collection := decode(t, rec)
	assert.Equal(t, "gold-rings", collection["slug"])

	rec = do(t, h, "POST", "/admin/collections/", `{"name":"Gold Rings"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, "POST", "/admin/products/", `{"collection_id":1,"category_id":1,"name":"Pavé Band","price":"990.00","sku":"BR-RNG-003"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	product := decode(t, rec)
	assert.Equal(t, "pave-band", product["slug"])
	assert.Equal(t, true, product["is_active"])

	rec = do(t, h, "GET", "/admin/collections/1/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "heritage", decode(t, rec)["slug"])

	rec = do(t, h, "GET", fmt.Sprintf("/admin/products/%v/", product["id"]), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BR-RNG-003", decode(t, rec)["sku"])

	rec = do(t, h, "GET", "/admin/products/999/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, "GET", "/admin/landing/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["configured"])

	rec = do(t, h, "PUT", "/admin/landing/goods/", `{"product_ids":[1,2,3]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "goods", decode(t, rec)["field"])

	rec = do(t, h, "PUT", "/admin/landing/three/", `{"items":[{"position":1,"product_id":1},{"position":1,"product_id":2}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "position", decode(t, rec)["field"])

	// Twisted Band (id 2) sits in the three-items block.
	rec = do(t, h, "DELETE", "/admin/products/2/", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, "DELETE", "/admin/collections/1/", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, "DELETE", "/admin/images/1/", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNew(t *testing.T) {
	srv := New(config.ServerConfig{Addr: ":9999", ReadTimeout: 5, WriteTimeout: 7}, http.NotFoundHandler())
	assert.Equal(t, ":9999", srv.Addr)
	assert.Equal(t, float64(5), srv.ReadTimeout.Seconds())
	assert.Equal(t, float64(7), srv.WriteTimeout.Seconds())
}
