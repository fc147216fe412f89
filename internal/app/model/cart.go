package model

import (
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
)

type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartLine 현재 시세로 계산된 장바구니 항목
type CartLine struct {
	ItemID        uint          `json:"item_id"`
	Product       PricedProduct `json:"product"`
	Quantity      int           `json:"quantity"`
	UnitPrice     int64         `json:"unit_price"`
	LineTotal     int64         `json:"line_total"`
	MakingCharges float64       `json:"making_charges"` // 공임 금액 × 수량
}

// CartSummary 장바구니 합계와 세금
type CartSummary struct {
	Lines         []CartLine           `json:"items"`
	ItemCount     int                  `json:"item_count"`
	Subtotal      int64                `json:"subtotal"`
	MakingCharges float64              `json:"making_charges"`
	IsInterState  bool                 `json:"is_inter_state"`
	Tax           pricing.TaxBreakdown `json:"tax"`
	TaxLines      []pricing.TaxLine    `json:"tax_lines"`
}
