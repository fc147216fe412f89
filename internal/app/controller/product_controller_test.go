package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type memoryStore struct {
	uploaded map[string][]byte
	err      error
}

func (m *memoryStore) Upload(_ context.Context, key, _ string, body []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.uploaded[key] = body
	return "https://bucket.example/" + key, nil
}

func (m *memoryStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func setupProductControllerTest(t *testing.T, store service.ObjectStore) (*gin.Engine, *gorm.DB) {
	testDB := setupControllerDB(t)
	productRepo := repository.NewProductRepository(testDB)
	rates := newStaticRates()

	ctrl := NewProductController(
		service.NewProductService(productRepo, rates),
		service.NewPriceListService(productRepo, rates, store, time.Hour),
	)
	authMiddleware := testAuthMiddleware()

	router := gin.New()
	router.GET("/products", ctrl.ListProducts)
	router.GET("/products/featured", ctrl.GetFeaturedProducts)
	router.GET("/products/price-list.xlsx", ctrl.DownloadPriceList)
	router.GET("/products/:id", ctrl.GetProductByID)
	router.POST("/admin/price-list", authMiddleware.Authenticate(), authMiddleware.RequireRole(model.RoleAdmin), ctrl.PublishPriceList)
	return router, testDB
}

func TestProductController_ListProducts(t *testing.T) {
	router, _ := setupProductControllerTest(t, nil)

	w := performRequest(router, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15), decodeBody(t, w)["count"])

	w = performRequest(router, http.MethodGet, "/products?category=silver", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	products := response["products"].([]interface{})
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Contains(t, p.(map[string]interface{})["category"], "Silver")
	}
}

func TestProductController_GetProductByID(t *testing.T) {
	router, _ := setupProductControllerTest(t, nil)

	w := performRequest(router, http.MethodGet, "/products/1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	product := decodeBody(t, w)["product"].(map[string]interface{})
	assert.Equal(t, float64(91934), product["price"])
	pricingInfo := product["pricing"].(map[string]interface{})
	assert.Equal(t, "gold", pricingInfo["metal"])
	assert.Equal(t, "22k", pricingInfo["tier"])
	assert.Equal(t, 9405.0, pricingInfo["rate_per_gram"])
	assert.Equal(t, "fallback", pricingInfo["rate_source"])

	w = performRequest(router, http.MethodGet, "/products/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ProductNotFound, errorCode(t, w))
}

func TestProductController_GetFeaturedProducts(t *testing.T) {
	router, _ := setupProductControllerTest(t, nil)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantCount float64
	}{
		{"default limit", "", http.StatusOK, 8},
		{"explicit limit", "?limit=3", http.StatusOK, 3},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"not a number", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, "/products/featured"+tt.query, nil, "")
			require.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantCount, decodeBody(t, w)["count"])
			}
		})
	}
}

func TestProductController_DownloadPriceList(t *testing.T) {
	router, _ := setupProductControllerTest(t, nil)

	w := performRequest(router, http.MethodGet, "/products/price-list.xlsx", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.PriceListContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), priceListFilename)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	assert.Len(t, rows, 16)
}

func TestProductController_PublishPriceList(t *testing.T) {
	t.Run("admin publishes", func(t *testing.T) {
		store := &memoryStore{uploaded: map[string][]byte{}}
		router, testDB := setupProductControllerTest(t, store)
		admin := findUser(t, testDB, "admin@jrbgold.com")

		w := performRequest(router, http.MethodPost, "/admin/price-list", nil, tokenFor(t, admin))
		require.Equal(t, http.StatusCreated, w.Code)
		published := decodeBody(t, w)["price_list"].(map[string]interface{})
		assert.Contains(t, published["download_url"], "https://signed.example/price-lists/")
		assert.Len(t, store.uploaded, 1)
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		router, testDB := setupProductControllerTest(t, &memoryStore{uploaded: map[string][]byte{}})
		user := findUser(t, testDB, "user@example.com")

		w := performRequest(router, http.MethodPost, "/admin/price-list", nil, tokenFor(t, user))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("storage not configured", func(t *testing.T) {
		router, testDB := setupProductControllerTest(t, nil)
		admin := findUser(t, testDB, "admin@jrbgold.com")

		w := performRequest(router, http.MethodPost, "/admin/price-list", nil, tokenFor(t, admin))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, apperrors.PriceListUnavailable, errorCode(t, w))
	})

	t.Run("upload failure", func(t *testing.T) {
		store := &memoryStore{uploaded: map[string][]byte{}, err: errors.New("denied")}
		router, testDB := setupProductControllerTest(t, store)
		admin := findUser(t, testDB, "admin@jrbgold.com")

		w := performRequest(router, http.MethodPost, "/admin/price-list", nil, tokenFor(t, admin))
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, apperrors.PriceListPublishFail, errorCode(t, w))
	})
}
