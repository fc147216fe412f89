package service

import (
	"errors"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	DefaultFeaturedLimit = 8
	MaxFeaturedLimit     = 50
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// RateSnapshotSource 현재 시세 스냅샷 제공자
type RateSnapshotSource interface {
	Snapshot() pricing.MetalRateSnapshot
}

type ProductService interface {
	ListProducts(category string) ([]model.PricedProduct, error)
	GetFeaturedProducts(limit int) ([]model.PricedProduct, error)
	GetProductByID(id string) (*model.PricedProduct, error)
}

type productService struct {
	productRepo repository.ProductRepository
	rates       RateSnapshotSource
}

func NewProductService(productRepo repository.ProductRepository, rates RateSnapshotSource) ProductService {
	return &productService{
		productRepo: productRepo,
		rates:       rates,
	}
}

// PriceProduct 스냅샷 기준 판매가, 비교 가격, 산정 내역을 붙인다
func PriceProduct(p model.Product, snap pricing.MetalRateSnapshot) model.PricedProduct {
	spec := p.PricingSpec()
	breakdown := pricing.Breakdown(spec, snap)
	result := pricing.PriceResult{
		Price:          breakdown.Price,
		CompareAtPrice: pricing.CalculateCompareAtPrice(spec, snap),
	}
	return model.PricedProduct{
		Product:         p,
		Price:           result.Price,
		CompareAtPrice:  result.CompareAtPrice,
		DiscountPercent: result.DiscountPercent(),
		Pricing:         breakdown,
	}
}

func priceAll(products []model.Product, snap pricing.MetalRateSnapshot) []model.PricedProduct {
	priced := make([]model.PricedProduct, 0, len(products))
	for _, p := range products {
		priced = append(priced, PriceProduct(p, snap))
	}
	return priced
}

func (s *productService) ListProducts(category string) ([]model.PricedProduct, error) {
	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{Category: category})
	if err != nil {
		logger.Error("Failed to list products", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}

	logger.Debug("Products listed", map[string]interface{}{
		"category": category,
		"count":    len(products),
	})
	return priceAll(products, s.rates.Snapshot()), nil
}

func (s *productService) GetFeaturedProducts(limit int) ([]model.PricedProduct, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}

	products, err := s.productRepo.FindWithFilter(repository.ProductFilter{Limit: limit})
	if err != nil {
		logger.Error("Failed to fetch featured products", err, map[string]interface{}{
			"limit": limit,
		})
		return nil, err
	}
	return priceAll(products, s.rates.Snapshot()), nil
}

func (s *productService) GetProductByID(id string) (*model.PricedProduct, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	priced := PriceProduct(*product, s.rates.Snapshot())
	return &priced, nil
}
