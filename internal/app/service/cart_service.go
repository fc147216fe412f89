package service

import (
	"errors"
	"strings"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)

type CartService interface {
	GetCart(userID uint, shippingState string) (*model.CartSummary, error)
	AddToCart(userID uint, productID string, quantity int) error
	UpdateQuantity(userID uint, productID string, quantity int) error
	RemoveFromCart(userID uint, productID string) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	rates       RateSnapshotSource
	storeState  string
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	rates RateSnapshotSource,
	storeState string,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		rates:       rates,
		storeState:  storeState,
	}
}

// IsInterState 배송지 주가 매장 소재 주와 다르면 true. 주가 비어 있으면 주 내 거래로 본다
func IsInterState(storeState, shippingState string) bool {
	shippingState = strings.TrimSpace(shippingState)
	if shippingState == "" {
		return false
	}
	return !strings.EqualFold(strings.TrimSpace(storeState), shippingState)
}

// SummarizeCart 같은 스냅샷으로 모든 항목을 가격 산정하고 세금을 계산한다.
// 공임 합계는 항목별 공임 금액 × 수량의 합이다.
func SummarizeCart(items []model.CartItem, snap pricing.MetalRateSnapshot, isInterState bool) (*model.CartSummary, error) {
	summary := &model.CartSummary{
		Lines:        make([]model.CartLine, 0, len(items)),
		IsInterState: isInterState,
	}

	for _, item := range items {
		priced := PriceProduct(item.Product, snap)
		lineMaking := priced.Pricing.MakingCharges * float64(item.Quantity)
		line := model.CartLine{
			ItemID:        item.ID,
			Product:       priced,
			Quantity:      item.Quantity,
			UnitPrice:     priced.Price,
			LineTotal:     priced.Price * int64(item.Quantity),
			MakingCharges: lineMaking,
		}
		summary.Lines = append(summary.Lines, line)
		summary.ItemCount += item.Quantity
		summary.Subtotal += line.LineTotal
		summary.MakingCharges += lineMaking
	}

	tax, err := pricing.CalculateTax(float64(summary.Subtotal), summary.MakingCharges, isInterState)
	if err != nil {
		return nil, err
	}
	summary.Tax = tax
	summary.TaxLines = pricing.TaxSummary(tax, isInterState)
	return summary, nil
}

func (s *cartService) GetCart(userID uint, shippingState string) (*model.CartSummary, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	summary, err := SummarizeCart(items, s.rates.Snapshot(), IsInterState(s.storeState, shippingState))
	if err != nil {
		logger.Error("Failed to summarize cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return summary, nil
}

func (s *cartService) AddToCart(userID uint, productID string, quantity int) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		return err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			return err
		}
		logger.Info("Cart item quantity increased", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"quantity":   existing.Quantity,
		})
		return nil
	}

	return s.cartRepo.Create(&model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity 수량이 0 이하이면 항목을 제거한다
func (s *cartService) UpdateQuantity(userID uint, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveFromCart(userID, productID)
	}

	item, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return err
	}

	logger.Info("Cart item quantity updated", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID uint, productID string) error {
	deleted, err := s.cartRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCartItemNotFound
	}

	logger.Info("Item removed from cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
