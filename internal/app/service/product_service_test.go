package service

import (
	"testing"
	"time"

	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProductServiceTest(t *testing.T) (ProductService, *staticRates) {
	testDB := setupServiceDB(t)
	createTestProducts(t, testDB)
	rates := newStaticRates()
	return NewProductService(repository.NewProductRepository(testDB), rates), rates
}

func TestProductService_ListProducts(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	products, err := svc.ListProducts("")
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "g22", products[0].ID)
	assert.Equal(t, int64(99000), products[0].Price)
	assert.Equal(t, int64(9900), products[1].Price)
	assert.Equal(t, int64(5000), products[2].Price)
	assert.True(t, products[2].Pricing.UsedBasePrice)
}

func TestProductService_ListProducts_CategoryFilter(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	products, err := svc.ListProducts("silver")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "s925", products[0].ID)

	products, err = svc.ListProducts("platinum")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_GetProductByID(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	t.Run("priced with compare-at ratio", func(t *testing.T) {
		p, err := svc.GetProductByID("g22")
		require.NoError(t, err)
		assert.Equal(t, int64(99000), p.Price)
		require.NotNil(t, p.CompareAtPrice)
		// 99000 × 55000 / 50000
		assert.Equal(t, int64(108900), *p.CompareAtPrice)
		assert.Equal(t, 9, p.DiscountPercent)
		assert.Equal(t, pricing.MetalGold, p.Pricing.Metal)
		assert.Equal(t, 9000.0, p.Pricing.RatePerGram)
		assert.InDelta(t, 9000.0, p.Pricing.MakingCharges, 1e-9)
		assert.Equal(t, pricing.SourceFallback, p.Pricing.RateSource)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetProductByID("missing")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductService_PricesFollowSnapshot(t *testing.T) {
	svc, rates := setupProductServiceTest(t)

	live := pricing.MetalRateSnapshot{}.
		WithGold(pricing.GoldRates{K24: 11000, K22: 10000, K18: 8000}, pricing.SourceLive).
		WithAsOf(time.Now())
	rates.set(live)

	p, err := svc.GetProductByID("g22")
	require.NoError(t, err)
	assert.Equal(t, int64(110000), p.Price)
	assert.Equal(t, pricing.SourceLive, p.Pricing.RateSource)

	// 은 시세가 없으면 기본가
	s, err := svc.GetProductByID("s925")
	require.NoError(t, err)
	assert.Equal(t, int64(4000), s.Price)
	assert.True(t, s.Pricing.UsedBasePrice)
}

func TestProductService_GetFeaturedProducts(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default limit", 0, 3},
		{"explicit limit", 2, 2},
		{"clamped limit", 500, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := svc.GetFeaturedProducts(tt.limit)
			require.NoError(t, err)
			assert.Len(t, products, tt.want)
		})
	}
}
