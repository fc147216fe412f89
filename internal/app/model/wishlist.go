package model

import (
	"time"
)

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                                              // 찜 항목 ID
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`                     // 사용자 ID
	ProductID string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"` // 상품 ID
	CreatedAt time.Time `json:"created_at"`                                                                        // 생성 시각

	// Associations (loaded with Preload)
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 상품 정보
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// WishlistEntry 현재 시세가 반영된 찜 항목
type WishlistEntry struct {
	ProductID string        `json:"product_id"`
	AddedAt   time.Time     `json:"added_at"`
	Product   PricedProduct `json:"product"`
}
