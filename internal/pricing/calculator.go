package pricing

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPricingSpec = errors.New("invalid product pricing spec")

// ProductPricingSpec 상품 가격 산정 입력값
type ProductPricingSpec struct {
	ProductID            string
	Weight               float64 // g
	Karat                Karat
	SilverPurity         SilverPurity
	PlatinumPurity       PlatinumPurity
	MakingChargesPercent float64
	BasePrice            int64
	CompareAtPrice       *int64
}

// Validate 무게, 공임 비율, 순도 지정 개수 검사
func (s ProductPricingSpec) Validate() error {
	if s.Weight <= 0 || math.IsNaN(s.Weight) {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidPricingSpec)
	}
	if s.MakingChargesPercent < 0 || s.MakingChargesPercent > 100 {
		return fmt.Errorf("%w: making charges must be within [0, 100]", ErrInvalidPricingSpec)
	}
	if s.BasePrice < 0 {
		return fmt.Errorf("%w: base price must not be negative", ErrInvalidPricingSpec)
	}
	if s.CompareAtPrice != nil && *s.CompareAtPrice < 0 {
		return fmt.Errorf("%w: compare-at price must not be negative", ErrInvalidPricingSpec)
	}
	set := 0
	for _, v := range []string{string(s.Karat), string(s.SilverPurity), string(s.PlatinumPurity)} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("%w: at most one of karat, silver purity, platinum purity may be set", ErrInvalidPricingSpec)
	}
	return nil
}

// Metal 순도 지정으로 결정되는 금속과 등급. 없으면 빈 값
func (s ProductPricingSpec) Metal() (Metal, string) {
	switch {
	case s.Karat != "":
		return MetalGold, string(s.Karat)
	case s.SilverPurity != "":
		return MetalSilver, string(s.SilverPurity)
	case s.PlatinumPurity != "":
		return MetalPlatinum, string(s.PlatinumPurity)
	}
	return "", ""
}

// PriceBreakdown 가격 산정 내역
type PriceBreakdown struct {
	Metal         Metal      `json:"metal,omitempty"`
	Tier          string     `json:"tier,omitempty"`
	RatePerGram   float64    `json:"rate_per_gram"`
	RateSource    RateSource `json:"rate_source,omitempty"`
	MetalValue    float64    `json:"metal_value"`
	MakingCharges float64    `json:"making_charges"`
	Price         int64      `json:"price"`
	UsedBasePrice bool       `json:"used_base_price"`
}

// Breakdown 금 → 은 → 백금 순서로 첫 번째로 지정되어 있고 시세가 있는
// 금속으로 가격을 산정한다. 해당하는 금속이 없으면 기본가를 사용한다.
func Breakdown(spec ProductPricingSpec, snap MetalRateSnapshot) PriceBreakdown {
	candidates := []struct {
		metal Metal
		tier  string
	}{
		{MetalGold, string(spec.Karat)},
		{MetalSilver, string(spec.SilverPurity)},
		{MetalPlatinum, string(spec.PlatinumPurity)},
	}

	for _, c := range candidates {
		if c.tier == "" {
			continue
		}
		rate, ok := snap.Rate(c.metal, c.tier)
		if !ok {
			continue
		}
		metalValue := rate * spec.Weight
		making := metalValue * (spec.MakingChargesPercent / 100)
		return PriceBreakdown{
			Metal:         c.metal,
			Tier:          c.tier,
			RatePerGram:   rate,
			RateSource:    snap.Source(c.metal),
			MetalValue:    metalValue,
			MakingCharges: making,
			Price:         int64(math.Round(metalValue + making)),
		}
	}

	return PriceBreakdown{
		Price:         spec.BasePrice,
		UsedBasePrice: true,
	}
}

// CalculatePrice 현재 시세 기준 판매가 (INR 정수)
func CalculatePrice(spec ProductPricingSpec, snap MetalRateSnapshot) int64 {
	return Breakdown(spec, snap).Price
}

// CalculateCompareAtPrice 정가 대비 비율을 유지한 비교 가격.
// 비교 가격이 없거나(0 포함) 기본가가 0이면 nil
func CalculateCompareAtPrice(spec ProductPricingSpec, snap MetalRateSnapshot) *int64 {
	if spec.CompareAtPrice == nil || *spec.CompareAtPrice == 0 || spec.BasePrice == 0 {
		return nil
	}
	ratio := float64(*spec.CompareAtPrice) / float64(spec.BasePrice)
	v := int64(math.Round(float64(CalculatePrice(spec, snap)) * ratio))
	return &v
}

// PriceResult 요청 시점마다 다시 계산되는 가격
type PriceResult struct {
	Price          int64  `json:"price"`
	CompareAtPrice *int64 `json:"compare_at_price"`
}

// DiscountPercent 비교 가격 대비 할인율 (정수 %)
func (r PriceResult) DiscountPercent() int {
	if r.CompareAtPrice == nil || *r.CompareAtPrice <= 0 || *r.CompareAtPrice <= r.Price {
		return 0
	}
	return int(math.Round(float64(*r.CompareAtPrice-r.Price) / float64(*r.CompareAtPrice) * 100))
}

func Quote(spec ProductPricingSpec, snap MetalRateSnapshot) PriceResult {
	return PriceResult{
		Price:          CalculatePrice(spec, snap),
		CompareAtPrice: CalculateCompareAtPrice(spec, snap),
	}
}
