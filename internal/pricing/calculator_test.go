package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func fallbackSnapshot() MetalRateSnapshot {
	return DefaultFallbackRates.Snapshot(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestCalculatePrice(t *testing.T) {
	snap := fallbackSnapshot()

	tests := []struct {
		name string
		spec ProductPricingSpec
		want int64
	}{
		{
			name: "22k bangle",
			spec: ProductPricingSpec{ProductID: "1", Weight: 8.5, Karat: Karat22, MakingChargesPercent: 15, BasePrice: 45200},
			want: 91934,
		},
		{
			name: "24k coin",
			spec: ProductPricingSpec{ProductID: "2", Weight: 2.0, Karat: Karat24, MakingChargesPercent: 3, BasePrice: 7850},
			want: 21136,
		},
		{
			name: "925 silver necklace",
			spec: ProductPricingSpec{ProductID: "3", Weight: 25, SilverPurity: Silver925, MakingChargesPercent: 12, BasePrice: 3200},
			want: 3360,
		},
		{
			name: "platinum band",
			spec: ProductPricingSpec{ProductID: "8", Weight: 4.5, PlatinumPurity: PlatinumPure, MakingChargesPercent: 15, BasePrice: 45000},
			want: 16560,
		},
		{
			name: "no making charges",
			spec: ProductPricingSpec{Weight: 1, Karat: Karat18, BasePrice: 1},
			want: 7775,
		},
		{
			name: "no metal uses base price",
			spec: ProductPricingSpec{Weight: 3, MakingChargesPercent: 10, BasePrice: 12345},
			want: 12345,
		},
		{
			name: "unknown karat falls back to base price",
			spec: ProductPricingSpec{Weight: 3, Karat: "14k", BasePrice: 999},
			want: 999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePrice(tt.spec, snap))
		})
	}
}

func TestCalculatePrice_MissingSlice(t *testing.T) {
	onlySilver := MetalRateSnapshot{}.WithSilver(SilverRates{Pure: 130, S925: 120}, SourceLive)

	spec := ProductPricingSpec{Weight: 8.5, Karat: Karat22, MakingChargesPercent: 15, BasePrice: 45200}
	assert.Equal(t, int64(45200), CalculatePrice(spec, onlySilver))
	assert.Equal(t, int64(45200), CalculatePrice(spec, MetalRateSnapshot{}))
}

func TestCalculatePrice_PrecedenceSkipsUnavailableMetal(t *testing.T) {
	// 금 시세가 없으면 다음으로 지정된 금속을 사용
	snap := MetalRateSnapshot{}.WithPlatinum(PlatinumRates{Pure: 3000}, SourceLive)
	spec := ProductPricingSpec{Weight: 2, Karat: Karat22, PlatinumPurity: PlatinumPure, BasePrice: 1}

	b := Breakdown(spec, snap)
	assert.Equal(t, MetalPlatinum, b.Metal)
	assert.Equal(t, int64(6000), b.Price)
	assert.Equal(t, SourceLive, b.RateSource)
}

func TestCalculatePrice_HalfRoundsAwayFromZero(t *testing.T) {
	snap := MetalRateSnapshot{}.WithPlatinum(PlatinumRates{Pure: 101}, SourceLive)

	tests := []struct {
		weight float64
		want   int64
	}{
		{0.5, 51},   // 50.5
		{1.5, 152},  // 151.5
		{0.25, 25},  // 25.25
		{0.75, 76},  // 75.75
	}
	for _, tt := range tests {
		spec := ProductPricingSpec{Weight: tt.weight, PlatinumPurity: PlatinumPure}
		assert.Equal(t, tt.want, CalculatePrice(spec, snap), "weight %v", tt.weight)
	}
}

func TestCalculatePrice_MonotonicInRate(t *testing.T) {
	tests := []struct {
		name string
		spec ProductPricingSpec
		snap func(rate float64) MetalRateSnapshot
	}{
		{
			name: "gold 22k",
			spec: ProductPricingSpec{Weight: 10, Karat: Karat22, MakingChargesPercent: 10},
			snap: func(rate float64) MetalRateSnapshot {
				return MetalRateSnapshot{}.WithGold(GoldRates{K24: 20000, K22: rate, K18: 1}, SourceLive)
			},
		},
		{
			name: "silver 925",
			spec: ProductPricingSpec{Weight: 10, SilverPurity: Silver925, MakingChargesPercent: 10},
			snap: func(rate float64) MetalRateSnapshot {
				return MetalRateSnapshot{}.WithSilver(SilverRates{Pure: 20000, S925: rate}, SourceLive)
			},
		},
		{
			name: "platinum",
			spec: ProductPricingSpec{Weight: 10, PlatinumPurity: PlatinumPure, MakingChargesPercent: 10},
			snap: func(rate float64) MetalRateSnapshot {
				return MetalRateSnapshot{}.WithPlatinum(PlatinumRates{Pure: rate}, SourceLive)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, rate := range []float64{1, 85, 120, 3000, 9405} {
				low := CalculatePrice(tt.spec, tt.snap(rate))
				high := CalculatePrice(tt.spec, tt.snap(rate+100))
				assert.Greater(t, high, low, "rate %v", rate)
			}
		})
	}
}

func TestCalculatePrice_Idempotent(t *testing.T) {
	snap := fallbackSnapshot()
	specs := []ProductPricingSpec{
		{Weight: 8.5, Karat: Karat22, MakingChargesPercent: 15, BasePrice: 45200},
		{Weight: 12.3, Karat: Karat18, MakingChargesPercent: 7.5},
		{Weight: 25, SilverPurity: Silver925, MakingChargesPercent: 12},
		{Weight: 4.5, PlatinumPurity: PlatinumPure, MakingChargesPercent: 15},
		{Weight: 1, BasePrice: 2500},
	}

	for _, spec := range specs {
		first := CalculatePrice(spec, snap)
		assert.Equal(t, first, CalculatePrice(spec, snap), "%+v", spec)
		assert.Equal(t, Breakdown(spec, snap), Breakdown(spec, snap), "%+v", spec)
	}
}

func TestDeriveGoldRates_PurityOrdering(t *testing.T) {
	for r := 1; r < 20000; r++ {
		rate := float64(r)
		k22 := math.Round(rate * Purity22K)
		k18 := math.Round(rate * Purity18K)
		if !assert.LessOrEqual(t, k22, rate, "22k at %d", r) ||
			!assert.LessOrEqual(t, k18, k22, "18k at %d", r) ||
			!assert.NoError(t, DeriveGoldRates(rate, 0, 0).Validate(), "derived at %d", r) {
			return
		}
	}
}

func TestCalculatePrice_BasePriceRegardlessOfSnapshot(t *testing.T) {
	snapshots := map[string]MetalRateSnapshot{
		"fallback": fallbackSnapshot(),
		"empty":    {},
		"doubled": RateTable{
			Gold:     GoldRates{K24: 20000, K22: 18000, K18: 15000},
			Silver:   SilverRates{Pure: 260, S925: 240},
			Platinum: PlatinumRates{Pure: 6400},
		}.Snapshot(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		"silver only":   MetalRateSnapshot{}.WithSilver(SilverRates{Pure: 130, S925: 120}, SourceLive),
		"platinum only": MetalRateSnapshot{}.WithPlatinum(PlatinumRates{Pure: 3200}, SourceLive),
	}

	for name, snap := range snapshots {
		t.Run(name, func(t *testing.T) {
			spec := ProductPricingSpec{Weight: 5, MakingChargesPercent: 20, BasePrice: 15000}
			assert.Equal(t, int64(15000), CalculatePrice(spec, snap))
			assert.True(t, Breakdown(spec, snap).UsedBasePrice)
		})
	}

	withoutGold := map[string]MetalRateSnapshot{
		"empty":         snapshots["empty"],
		"silver only":   snapshots["silver only"],
		"platinum only": snapshots["platinum only"],
	}
	for name, snap := range withoutGold {
		for _, karat := range []Karat{Karat24, Karat22, Karat18} {
			t.Run(name+"/"+string(karat), func(t *testing.T) {
				spec := ProductPricingSpec{Weight: 5, Karat: karat, MakingChargesPercent: 20, BasePrice: 15000}
				assert.Equal(t, int64(15000), CalculatePrice(spec, snap))
			})
		}
	}
}

func TestBreakdown(t *testing.T) {
	spec := ProductPricingSpec{Weight: 25, SilverPurity: Silver925, MakingChargesPercent: 12, BasePrice: 3200}

	b := Breakdown(spec, fallbackSnapshot())
	assert.Equal(t, MetalSilver, b.Metal)
	assert.Equal(t, "925", b.Tier)
	assert.Equal(t, float64(120), b.RatePerGram)
	assert.Equal(t, SourceFallback, b.RateSource)
	assert.InDelta(t, 3000, b.MetalValue, 1e-9)
	assert.InDelta(t, 360, b.MakingCharges, 1e-9)
	assert.False(t, b.UsedBasePrice)

	b = Breakdown(ProductPricingSpec{Weight: 1, BasePrice: 500}, fallbackSnapshot())
	assert.True(t, b.UsedBasePrice)
	assert.Equal(t, int64(500), b.Price)
}

func TestCalculateCompareAtPrice(t *testing.T) {
	snap := fallbackSnapshot()

	t.Run("scales with dynamic price", func(t *testing.T) {
		spec := ProductPricingSpec{Weight: 8.5, Karat: Karat22, MakingChargesPercent: 15, BasePrice: 45200, CompareAtPrice: int64Ptr(48500)}
		got := CalculateCompareAtPrice(spec, snap)
		require.NotNil(t, got)
		assert.Equal(t, int64(98646), *got)
	})

	t.Run("diamond ring set", func(t *testing.T) {
		spec := ProductPricingSpec{Weight: 6.2, Karat: Karat22, MakingChargesPercent: 20, BasePrice: 32400, CompareAtPrice: int64Ptr(35200)}
		got := CalculateCompareAtPrice(spec, snap)
		require.NotNil(t, got)
		assert.Equal(t, int64(76020), *got)
	})

	t.Run("unset compare-at price", func(t *testing.T) {
		spec := ProductPricingSpec{Weight: 8.5, Karat: Karat22, BasePrice: 45200}
		assert.Nil(t, CalculateCompareAtPrice(spec, snap))
	})

	t.Run("zero base price", func(t *testing.T) {
		spec := ProductPricingSpec{Weight: 8.5, Karat: Karat22, BasePrice: 0, CompareAtPrice: int64Ptr(48500)}
		assert.Nil(t, CalculateCompareAtPrice(spec, snap))
	})

	t.Run("compare-at equal to base equals price", func(t *testing.T) {
		spec := ProductPricingSpec{Weight: 8.5, Karat: Karat22, MakingChargesPercent: 15, BasePrice: 45200, CompareAtPrice: int64Ptr(45200)}
		got := CalculateCompareAtPrice(spec, snap)
		require.NotNil(t, got)
		assert.Equal(t, CalculatePrice(spec, snap), *got)
	})
}

func TestQuote_DiscountPercent(t *testing.T) {
	spec := ProductPricingSpec{Weight: 8.5, Karat: Karat22, MakingChargesPercent: 15, BasePrice: 45200, CompareAtPrice: int64Ptr(48500)}
	q := Quote(spec, fallbackSnapshot())

	assert.Equal(t, int64(91934), q.Price)
	require.NotNil(t, q.CompareAtPrice)
	assert.Equal(t, 7, q.DiscountPercent())

	assert.Equal(t, 0, PriceResult{Price: 100}.DiscountPercent())
}

func TestProductPricingSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    ProductPricingSpec
		wantErr bool
	}{
		{"valid gold", ProductPricingSpec{Weight: 1, Karat: Karat22, MakingChargesPercent: 15}, false},
		{"valid plain", ProductPricingSpec{Weight: 1, BasePrice: 100}, false},
		{"zero weight", ProductPricingSpec{Weight: 0, Karat: Karat22}, true},
		{"making over 100", ProductPricingSpec{Weight: 1, MakingChargesPercent: 101}, true},
		{"negative making", ProductPricingSpec{Weight: 1, MakingChargesPercent: -1}, true},
		{"negative base", ProductPricingSpec{Weight: 1, BasePrice: -1}, true},
		{"two metals", ProductPricingSpec{Weight: 1, Karat: Karat22, SilverPurity: Silver925}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPricingSpec)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
