package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aurumatelier/jewelry-catalog/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProductStore struct {
	Stored *models.Product
	Err    error

	created      *models.Product
	lastID       uint
	addedImage   *models.ProductImage
	deletedImage uint
}

func (m *MockProductStore) GetByID(_ context.Context, id uint) (*models.Product, error) {
	m.lastID = id
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Stored == nil || m.Stored.ID != id {
		return nil, models.ErrProductNotFound
	}
	p := *m.Stored
	return &p, nil
}

func (m *MockProductStore) CreateProduct(_ context.Context, p *models.Product) error {
	m.created = p
	if m.Err != nil {
		return m.Err
	}
	p.ID = 42
	return nil
}

func (m *MockProductStore) UpdateProduct(_ context.Context, id uint, apply func(p *models.Product)) (*models.Product, error) {
	m.lastID = id
	if m.Err != nil {
		return nil, m.Err
	}
	p := *m.Stored
	apply(&p)
	return &p, nil
}

func (m *MockProductStore) DeleteProduct(_ context.Context, id uint) error {
	m.lastID = id
	return m.Err
}

func (m *MockProductStore) AddImage(_ context.Context, productID uint, img *models.ProductImage) error {
	m.lastID = productID
	m.addedImage = img
	return m.Err
}

func (m *MockProductStore) DeleteImage(_ context.Context, imageID uint) error {
	m.deletedImage = imageID
	return m.Err
}

func serveAdmin(h http.HandlerFunc, method, target, pattern, body string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(method+" "+pattern, h)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAdminHandleGet(t *testing.T) {
	stored := newTestProduct("archive-signet", "heritage", "rings", 1200, false)
	stored.ID = 5

	testCases := []struct {
		name               string
		target             string
		err                error
		expectedStatusCode int
	}{
		{"Inactive product is returned", "/admin/products/5/", nil, http.StatusOK},
		{"Unknown id", "/admin/products/6/", nil, http.StatusNotFound},
		{"Store failure", "/admin/products/5/", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockProductStore{Stored: &stored, Err: tc.err}
			h := NewAdminHandler(store, zap.NewNop())

			rec := serveAdmin(h.HandleGet, "GET", tc.target, "/admin/products/{id}/", "")

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "archive-signet", resp["slug"])
				assert.Equal(t, false, resp["is_active"])
			}
		})
	}
}

func TestAdminHandleCreate(t *testing.T) {
	t.Run("Creates an active product", func(t *testing.T) {
		store := &MockProductStore{}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleCreate, "POST", "/admin/products/", "/admin/products/",
			`{"collection_id":1,"category_id":2,"name":"Twisted Band","price":"640.00","sku":"BR-RNG-002","weight_grams":3.1}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, store.created)
		assert.True(t, store.created.IsActive, "products are active unless told otherwise")
		assert.Equal(t, uint(1), store.created.CollectionID)
		assert.True(t, decimal.RequireFromString("640").Equal(store.created.Price))
		assert.True(t, store.created.WeightGrams.Valid)
		assert.False(t, store.created.GemstoneCarat.Valid)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, float64(42), resp["id"])
	})

	t.Run("Missing price", func(t *testing.T) {
		store := &MockProductStore{}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleCreate, "POST", "/admin/products/", "/admin/products/", `{"name":"No Price"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"is required","field":"price"}`, rec.Body.String())
		assert.Nil(t, store.created)
	})

	t.Run("Validation error from the store", func(t *testing.T) {
		store := &MockProductStore{Err: &models.ValidationError{Field: "sku", Reason: `"X" already exists`}}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleCreate, "POST", "/admin/products/", "/admin/products/", `{"price":1,"sku":"X","name":"X"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"\"X\" already exists","field":"sku"}`, rec.Body.String())
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		h := NewAdminHandler(&MockProductStore{}, zap.NewNop())

		rec := serveAdmin(h.HandleCreate, "POST", "/admin/products/", "/admin/products/", `{"price":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid JSON body"}`, rec.Body.String())
	})
}

func TestAdminHandleUpdate(t *testing.T) {
	stored := newTestProduct("twisted-band", "bridal", "rings", 640, true)
	stored.ID = 7
	stored.Stock = 5

	t.Run("Only sent fields change", func(t *testing.T) {
		store := &MockProductStore{Stored: &stored}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleUpdate, "PUT", "/admin/products/7/", "/admin/products/{id}/", `{"is_active":false,"name":"Braided Band"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint(7), store.lastID)
		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Braided Band", resp["name"])
		assert.Equal(t, false, resp["is_active"])
		assert.Equal(t, float64(5), resp["stock"])
		assert.Equal(t, "twisted-band", resp["slug"])
	})

	t.Run("Explicit null clears optional measurements", func(t *testing.T) {
		karat := 18
		measured := stored
		measured.MetalPurityKarat = &karat
		measured.WeightGrams = decimal.NewNullDecimal(decimal.RequireFromString("4.20"))
		measured.GemstoneCarat = decimal.NewNullDecimal(decimal.RequireFromString("0.750"))
		store := &MockProductStore{Stored: &measured}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleUpdate, "PUT", "/admin/products/7/", "/admin/products/{id}/",
			`{"metal_purity_karat":null,"weight_grams":null,"gemstone_carat":null}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Nil(t, resp["metal_purity_karat"])
		assert.Nil(t, resp["weight_grams"])
		assert.Nil(t, resp["gemstone_carat"])
	})

	t.Run("Absent optional measurements are kept", func(t *testing.T) {
		karat := 14
		measured := stored
		measured.MetalPurityKarat = &karat
		measured.WeightGrams = decimal.NewNullDecimal(decimal.RequireFromString("2.50"))
		store := &MockProductStore{Stored: &measured}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleUpdate, "PUT", "/admin/products/7/", "/admin/products/{id}/", `{"gemstone_carat":"0.25"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, float64(14), resp["metal_purity_karat"])
		assert.Equal(t, "2.5", resp["weight_grams"])
		assert.Equal(t, "0.25", resp["gemstone_carat"])
	})

	t.Run("Not found", func(t *testing.T) {
		store := &MockProductStore{Err: models.ErrProductNotFound}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleUpdate, "PUT", "/admin/products/9/", "/admin/products/{id}/", `{}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Invalid id", func(t *testing.T) {
		store := &MockProductStore{Stored: &stored}
		h := NewAdminHandler(store, zap.NewNop())

		rec := serveAdmin(h.HandleUpdate, "PUT", "/admin/products/abc/", "/admin/products/{id}/", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, store.lastID)
	})
}

func TestAdminHandleDelete(t *testing.T) {
	testCases := []struct {
		name               string
		err                error
		expectedStatusCode int
	}{
		{"Deleted", nil, http.StatusNoContent},
		{"Featured in landing block", &models.ReferentialIntegrityError{Entity: "product x", ReferencedBy: "landing three-items entries", Count: 1}, http.StatusConflict},
		{"Missing", models.ErrProductNotFound, http.StatusNotFound},
		{"Store failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockProductStore{Err: tc.err}
			h := NewAdminHandler(store, zap.NewNop())

			rec := serveAdmin(h.HandleDelete, "DELETE", "/admin/products/3/", "/admin/products/{id}/", "")

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, uint(3), store.lastID)
		})
	}
}

func TestAdminImages(t *testing.T) {
	store := &MockProductStore{}
	h := NewAdminHandler(store, zap.NewNop())

	rec := serveAdmin(h.HandleAddImage, "POST", "/admin/products/3/images/", "/admin/products/{id}/images/", `{"image":"front.jpg","alt_text":"Front"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(3), store.lastID)
	require.NotNil(t, store.addedImage)
	assert.Equal(t, "front.jpg", store.addedImage.Image)
	assert.Equal(t, "Front", store.addedImage.AltText)

	store.Err = &models.ValidationError{Field: "images", Reason: "a product can have at most 5 images"}
	rec = serveAdmin(h.HandleAddImage, "POST", "/admin/products/3/images/", "/admin/products/{id}/images/", `{"image":"sixth.jpg"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"a product can have at most 5 images","field":"images"}`, rec.Body.String())

	store.Err = nil
	rec = serveAdmin(h.HandleDeleteImage, "DELETE", "/admin/images/11/", "/admin/images/{id}/", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(11), store.deletedImage)

	store.Err = models.ErrImageNotFound
	rec = serveAdmin(h.HandleDeleteImage, "DELETE", "/admin/images/12/", "/admin/images/{id}/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
