package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/jrbgold/jrb-backend/internal/middleware"
)

type WishlistController struct {
	wishlistService service.WishlistService
}

func NewWishlistController(wishlistService service.WishlistService) *WishlistController {
	return &WishlistController{
		wishlistService: wishlistService,
	}
}

type AddToWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist GET /api/v1/wishlist
func (ctrl *WishlistController) GetWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := ctrl.wishlistService.GetUserWishlist(userID)
	if err != nil {
		log.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": entries,
		"count": len(entries),
	})
}

// AddToWishlist is idempotent: an existing entry returns 200
// POST /api/v1/wishlist
func (ctrl *WishlistController) AddToWishlist(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	added, err := ctrl.wishlistService.AddToWishlist(userID, req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add to wishlist", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add to wishlist")
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{
			"message": "Product already in wishlist",
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Added to wishlist",
	})
}

// RemoveFromWishlist DELETE /api/v1/wishlist/:product_id
func (ctrl *WishlistController) RemoveFromWishlist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := ctrl.wishlistService.RemoveFromWishlist(userID, c.Param("product_id")); err != nil {
		if errors.Is(err, service.ErrWishlistItemNotFound) {
			apperrors.NotFound(c, apperrors.WishlistItemNotFound, "Wishlist item not found")
			return
		}
		apperrors.InternalError(c, "Failed to remove from wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from wishlist",
	})
}

// ClearWishlist DELETE /api/v1/wishlist
func (ctrl *WishlistController) ClearWishlist(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := ctrl.wishlistService.ClearWishlist(userID); err != nil {
		apperrors.InternalError(c, "Failed to clear wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist cleared",
	})
}

// MoveToCart POST /api/v1/wishlist/:product_id/move-to-cart
func (ctrl *WishlistController) MoveToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	productID := c.Param("product_id")

	if err := ctrl.wishlistService.MoveToCart(userID, productID); err != nil {
		switch {
		case errors.Is(err, service.ErrWishlistItemNotFound):
			apperrors.NotFound(c, apperrors.WishlistItemNotFound, "Wishlist item not found")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		default:
			log.Error("Failed to move wishlist item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to move item to cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Moved to cart",
	})
}
