package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWishlistControllerTest(t *testing.T) (*gin.Engine, string, service.CartService, uint) {
	testDB := setupControllerDB(t)
	productRepo := repository.NewProductRepository(testDB)
	rates := newStaticRates()
	cartService := service.NewCartService(repository.NewCartRepository(testDB), productRepo, rates, "Tamil Nadu")
	wishlistService := service.NewWishlistService(repository.NewWishlistRepository(testDB), productRepo, cartService, rates)
	ctrl := NewWishlistController(wishlistService)

	router := gin.New()
	wishlist := router.Group("/wishlist", testAuthMiddleware().Authenticate())
	wishlist.GET("", ctrl.GetWishlist)
	wishlist.POST("", ctrl.AddToWishlist)
	wishlist.DELETE("/:product_id", ctrl.RemoveFromWishlist)
	wishlist.DELETE("", ctrl.ClearWishlist)
	wishlist.POST("/:product_id/move-to-cart", ctrl.MoveToCart)

	user := findUser(t, testDB, "user@example.com")
	return router, tokenFor(t, user), cartService, user.ID
}

func TestWishlistController_AddIsIdempotent(t *testing.T) {
	router, token, _, _ := setupWishlistControllerTest(t)

	w := performRequest(router, http.MethodPost, "/wishlist", AddToWishlistRequest{ProductID: "2"}, token)
	assert.Equal(t, http.StatusCreated, w.Code)
	w = performRequest(router, http.MethodPost, "/wishlist", AddToWishlistRequest{ProductID: "2"}, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/wishlist", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	response := decodeBody(t, w)
	assert.Equal(t, float64(1), response["count"])
	entry := response["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "2", entry["product_id"])
	assert.NotZero(t, entry["product"].(map[string]interface{})["price"])
}

func TestWishlistController_Errors(t *testing.T) {
	router, token, _, _ := setupWishlistControllerTest(t)

	w := performRequest(router, http.MethodPost, "/wishlist", AddToWishlistRequest{ProductID: "missing"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ProductNotFound, errorCode(t, w))

	w = performRequest(router, http.MethodDelete, "/wishlist/2", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.WishlistItemNotFound, errorCode(t, w))

	w = performRequest(router, http.MethodPost, "/wishlist/2/move-to-cart", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.WishlistItemNotFound, errorCode(t, w))
}

func TestWishlistController_MoveToCart(t *testing.T) {
	router, token, cartService, userID := setupWishlistControllerTest(t)
	require.Equal(t, http.StatusCreated, performRequest(router, http.MethodPost, "/wishlist", AddToWishlistRequest{ProductID: "5"}, token).Code)

	w := performRequest(router, http.MethodPost, "/wishlist/5/move-to-cart", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	cart, err := cartService.GetCart(userID, "")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "5", cart.Lines[0].Product.ID)

	w = performRequest(router, http.MethodGet, "/wishlist", nil, token)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestWishlistController_RemoveAndClear(t *testing.T) {
	router, token, _, _ := setupWishlistControllerTest(t)
	for _, id := range []string{"1", "2", "3"} {
		require.Equal(t, http.StatusCreated, performRequest(router, http.MethodPost, "/wishlist", AddToWishlistRequest{ProductID: id}, token).Code)
	}

	require.Equal(t, http.StatusOK, performRequest(router, http.MethodDelete, "/wishlist/1", nil, token).Code)
	w := performRequest(router, http.MethodGet, "/wishlist", nil, token)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	require.Equal(t, http.StatusOK, performRequest(router, http.MethodDelete, "/wishlist", nil, token).Code)
	w = performRequest(router, http.MethodGet, "/wishlist", nil, token)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}
