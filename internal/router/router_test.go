package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/config"
	"github.com/jrbgold/jrb-backend/internal/app/controller"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	"github.com/jrbgold/jrb-backend/internal/db"
	"github.com/jrbgold/jrb-backend/internal/events"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/internal/rates"
	ws "github.com/jrbgold/jrb-backend/internal/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var errOffline = errors.New("rate api offline")

// offlineSource 항상 실패하는 시세 공급처
type offlineSource struct{}

func (offlineSource) FetchGold(context.Context) (pricing.GoldRates, error) {
	return pricing.GoldRates{}, errOffline
}

func (offlineSource) FetchSilver(context.Context) (pricing.SilverRates, error) {
	return pricing.SilverRates{}, errOffline
}

func (offlineSource) FetchPlatinum(context.Context) (pricing.PlatinumRates, error) {
	return pricing.PlatinumRates{}, errOffline
}

type testServer struct {
	router    *gin.Engine
	provider  *rates.Provider
	publisher *events.MockPublisher
}

func setupRouterTest(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"https://jrbgold.in"}},
		Store:  config.StoreConfig{Name: "JRB Gold", State: "Tamil Nadu"},
	}

	reg := prometheus.NewRegistry()
	provider := rates.NewProvider(offlineSource{},
		rates.WithInterCallDelay(0),
		rates.WithMetrics(rates.NewMetrics(reg)),
	)

	userRepo := repository.NewUserRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	publisher := events.NewMockPublisher()

	authService := service.NewAuthServiceWithRevoker(userRepo, testSecret, 15*time.Minute, 7*24*time.Hour,
		func(context.Context, string, time.Duration) error { return nil })
	cartService := service.NewCartService(cartRepo, productRepo, provider, cfg.Store.State)
	rateService := service.NewMetalRateService(repository.NewMetalRateRepository(testDB), provider)
	provider.Subscribe(rateService.Listener())

	hub := ws.NewHub()
	authMiddleware := middleware.NewAuthMiddleware(testSecret).WithRevocationChecker(func(context.Context, string) (bool, error) {
		return false, nil
	})

	r := NewRouter(
		controller.NewAuthController(authService),
		controller.NewProductController(
			service.NewProductService(productRepo, provider),
			service.NewPriceListService(productRepo, provider, nil, time.Hour),
		),
		controller.NewCartController(cartService),
		controller.NewWishlistController(service.NewWishlistService(repository.NewWishlistRepository(testDB), productRepo, cartService, provider)),
		controller.NewOrderController(service.NewOrderService(testDB, repository.NewOrderRepository(testDB), cartRepo, provider, publisher, cfg.Store.State)),
		controller.NewRateController(rateService),
		controller.NewRateStreamController(hub, cfg.CORS.AllowedOrigins),
		controller.NewTaxController(),
		authMiddleware,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		cfg,
	)

	return &testServer{router: r.Setup(), provider: provider, publisher: publisher}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w.Code, response
}

func TestRouter_Health(t *testing.T) {
	ts := setupRouterTest(t)

	code, response := ts.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, "JRB Gold API is running", response["message"])
}

func TestRouter_Metrics(t *testing.T) {
	ts := setupRouterTest(t)
	require.NoError(t, ts.provider.Refresh(context.Background()))

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `jrb_metal_rate_per_gram{metal="gold",tier="22k"} 9405`)
	assert.Contains(t, body, `jrb_metal_rate_fetch_total{metal="silver",outcome="fallback"} 1`)
	assert.Contains(t, body, "jrb_metal_rate_refresh_cycles_total 1")
}

func TestRouter_CORS(t *testing.T) {
	ts := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://jrbgold.in")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://jrbgold.in", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://other.example")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_AdminRoutesRequireAdmin(t *testing.T) {
	ts := setupRouterTest(t)

	_, login := ts.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "user@example.com",
		"password": "password123",
	}, "")
	token := login["access_token"].(string)

	code, _ := ts.do(t, http.MethodPost, "/api/v1/rates/refresh", nil, token)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = ts.do(t, http.MethodPost, "/api/v1/admin/price-list", nil, token)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRouter_ShoppingJourney(t *testing.T) {
	ts := setupRouterTest(t)

	t.Log("Step 1: register")
	code, registered := ts.do(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
		"name":     "Test Buyer",
		"phone":    "9876543210",
	}, "")
	require.Equal(t, http.StatusCreated, code)
	token := registered["access_token"].(string)

	t.Log("Step 2: browse current rates and products")
	code, overview := ts.do(t, http.MethodGet, "/api/v1/rates", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, overview["tiers"], 6)

	code, product := ts.do(t, http.MethodGet, "/api/v1/products/1", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(91934), product["product"].(map[string]interface{})["price"])

	t.Log("Step 3: wishlist then move to cart")
	code, _ = ts.do(t, http.MethodPost, "/api/v1/wishlist", map[string]string{"product_id": "1"}, token)
	require.Equal(t, http.StatusCreated, code)
	code, _ = ts.do(t, http.MethodPost, "/api/v1/wishlist/1/move-to-cart", nil, token)
	require.Equal(t, http.StatusOK, code)

	code, cart := ts.do(t, http.MethodGet, "/api/v1/cart?state=Tamil%20Nadu", nil, token)
	require.Equal(t, http.StatusOK, code)
	summary := cart["cart"].(map[string]interface{})
	assert.Equal(t, float64(91934), summary["subtotal"])
	grandTotal := summary["tax"].(map[string]interface{})["grand_total"]

	t.Log("Step 4: checkout")
	code, placed := ts.do(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"shipping_address": map[string]string{
			"full_name": "Test Buyer",
			"email":     "buyer@example.com",
			"phone":     "9876543210",
			"address":   "4 Big Street",
			"city":      "Chennai",
			"state":     "Tamil Nadu",
			"pincode":   "600001",
		},
		"payment_method": "upi",
	}, token)
	require.Equal(t, http.StatusCreated, code)
	order := placed["order"].(map[string]interface{})
	assert.Equal(t, grandTotal, order["grand_total"])
	assert.Equal(t, []events.EventType{events.EventTypeOrderPlaced}, ts.publisher.Types())

	t.Log("Step 5: order history and tracking")
	code, orders := ts.do(t, http.MethodGet, "/api/v1/orders", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), orders["count"])

	code, tracking := ts.do(t, http.MethodGet, "/api/v1/orders/track/"+order["tracking_number"].(string), nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "processing", tracking["tracking"].(map[string]interface{})["status"])

	code, cart = ts.do(t, http.MethodGet, "/api/v1/cart", nil, token)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, cart["cart"].(map[string]interface{})["items"])
}
