package model

import (
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
)

// ProductSpec 상품 사양 항목 (표시 순서 유지)
type ProductSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Product struct {
	ID                   string        `gorm:"primaryKey;type:varchar(32)" json:"id"`                 // 상품 ID
	Name                 string        `gorm:"not null" json:"name"`                                  // 상품명
	Category             string        `gorm:"not null;index" json:"category"`                        // 카테고리
	Description          string        `gorm:"type:text" json:"description"`                          // 상품 설명
	ImageURL             string        `json:"image_url"`                                             // 대표 이미지
	Weight               float64       `gorm:"not null" json:"weight"`                                // 무게 (g)
	Karat                string        `gorm:"type:varchar(8)" json:"karat,omitempty"`                // 금 순도
	SilverPurity         string        `gorm:"type:varchar(8)" json:"silver_purity,omitempty"`        // 은 순도
	PlatinumPurity       string        `gorm:"type:varchar(8)" json:"platinum_purity,omitempty"`      // 백금 순도
	MakingChargesPercent float64       `gorm:"not null;default:0" json:"making_charges_percent"`      // 공임 비율 (%)
	BasePrice            int64         `gorm:"not null" json:"base_price"`                            // 기본가 (시세 없을 때)
	BaseCompareAtPrice   *int64        `json:"base_compare_at_price,omitempty"`                       // 정가 (할인 표시용)
	RatingAvg            float64       `json:"rating_avg"`                                            // 평균 평점
	RatingCount          int           `json:"rating_count"`                                          // 평점 수
	Badges               []string      `gorm:"serializer:json;type:text" json:"badges"`               // 배지
	Specifications       []ProductSpec `gorm:"serializer:json;type:text" json:"specifications"`       // 사양
	Features             []string      `gorm:"serializer:json;type:text" json:"features"`             // 특징
	InStock              bool          `gorm:"not null;default:true" json:"in_stock"`                 // 재고 여부
	SortOrder            int           `gorm:"not null;default:0;index" json:"-"`                     // 진열 순서
	CreatedAt            time.Time     `json:"created_at"`                                            // 생성 시각
	UpdatedAt            time.Time     `json:"updated_at"`                                            // 수정 시각
}

func (Product) TableName() string {
	return "products"
}

// PricingSpec 가격 산정 입력값으로 변환
func (p Product) PricingSpec() pricing.ProductPricingSpec {
	return pricing.ProductPricingSpec{
		ProductID:            p.ID,
		Weight:               p.Weight,
		Karat:                pricing.Karat(p.Karat),
		SilverPurity:         pricing.SilverPurity(p.SilverPurity),
		PlatinumPurity:       pricing.PlatinumPurity(p.PlatinumPurity),
		MakingChargesPercent: p.MakingChargesPercent,
		BasePrice:            p.BasePrice,
		CompareAtPrice:       p.BaseCompareAtPrice,
	}
}

// PricedProduct 현재 시세가 반영된 상품 응답
type PricedProduct struct {
	Product
	Price           int64                  `json:"price"`
	CompareAtPrice  *int64                 `json:"compare_at_price,omitempty"`
	DiscountPercent int                    `json:"discount_percent,omitempty"`
	Pricing         pricing.PriceBreakdown `json:"pricing"`
}
