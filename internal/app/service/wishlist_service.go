package service

import (
	"errors"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

type WishlistService interface {
	GetUserWishlist(userID uint) ([]model.WishlistEntry, error)
	AddToWishlist(userID uint, productID string) (bool, error)
	RemoveFromWishlist(userID uint, productID string) error
	ClearWishlist(userID uint) error
	MoveToCart(userID uint, productID string) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	cartService  CartService
	rates        RateSnapshotSource
}

func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	productRepo repository.ProductRepository,
	cartService CartService,
	rates RateSnapshotSource,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
		cartService:  cartService,
		rates:        rates,
	}
}

func (s *wishlistService) GetUserWishlist(userID uint) ([]model.WishlistEntry, error) {
	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	snap := s.rates.Snapshot()
	entries := make([]model.WishlistEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, model.WishlistEntry{
			ProductID: item.ProductID,
			AddedAt:   item.CreatedAt,
			Product:   PriceProduct(item.Product, snap),
		})
	}

	logger.Debug("User wishlist fetched", map[string]interface{}{
		"user_id": userID,
		"count":   len(entries),
	})
	return entries, nil
}

// AddToWishlist 이미 찜한 상품이면 아무것도 하지 않고 false
func (s *wishlistService) AddToWishlist(userID uint, productID string) (bool, error) {
	logger.Info("Adding item to wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}

	existing, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	if err := s.wishlistRepo.Create(&model.WishlistItem{UserID: userID, ProductID: productID}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *wishlistService) RemoveFromWishlist(userID uint, productID string) error {
	deleted, err := s.wishlistRepo.Delete(userID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWishlistItemNotFound
	}

	logger.Info("Item removed from wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

func (s *wishlistService) ClearWishlist(userID uint) error {
	if err := s.wishlistRepo.DeleteByUserID(userID); err != nil {
		return err
	}
	logger.Info("Wishlist cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// MoveToCart 장바구니에 1개 담고 찜 목록에서 제거한다
func (s *wishlistService) MoveToCart(userID uint, productID string) error {
	if _, err := s.wishlistRepo.FindByUserAndProduct(userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWishlistItemNotFound
		}
		return err
	}

	if err := s.cartService.AddToCart(userID, productID, 1); err != nil {
		return err
	}
	if _, err := s.wishlistRepo.Delete(userID, productID); err != nil {
		return err
	}

	logger.Info("Wishlist item moved to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}
