package model

import (
	"time"
)

type OrderStatus string   // 주문(배송) 상태 코드
type PaymentStatus string // 결제 상태 코드
type PaymentMethod string // 결제 수단

const (
	OrderStatusProcessing OrderStatus = "processing" // 주문 접수
	OrderStatusConfirmed  OrderStatus = "confirmed"  // 주문 확정
	OrderStatusShipped    OrderStatus = "shipped"    // 배송 중
	OrderStatusDelivered  OrderStatus = "delivered"  // 배송 완료
	OrderStatusCancelled  OrderStatus = "cancelled"  // 주문 취소

	PaymentStatusPaid     PaymentStatus = "paid"     // 결제 완료
	PaymentStatusRefunded PaymentStatus = "refunded" // 환불 완료

	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
	PaymentCOD        PaymentMethod = "cod"
)

// ShippingAddress 배송지 정보
type ShippingAddress struct {
	FullName string `gorm:"not null" json:"full_name" binding:"required"`
	Email    string `gorm:"not null" json:"email" binding:"required,email"`
	Phone    string `gorm:"not null" json:"phone" binding:"required"`
	Address  string `gorm:"type:text;not null" json:"address" binding:"required"`
	City     string `gorm:"not null" json:"city" binding:"required"`
	State    string `gorm:"not null" json:"state" binding:"required"`
	Pincode  string `gorm:"type:varchar(6);not null" json:"pincode" binding:"required"`
}

type Order struct {
	ID                string          `gorm:"primaryKey;type:varchar(32)" json:"id"`                        // 주문 번호 (JRB...)
	UserID            uint            `gorm:"not null;index" json:"user_id"`                                // 주문자 ID
	Status            OrderStatus     `gorm:"type:varchar(20);default:'confirmed'" json:"status"`           // 저장된 주문 상태
	PaymentMethod     PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method"`              // 결제 수단
	PaymentStatus     PaymentStatus   `gorm:"type:varchar(20);default:'paid'" json:"payment_status"`        // 결제 상태
	Shipping          ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`    // 배송지
	TrackingNumber    string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"tracking_number"` // 운송장 번호
	Subtotal          int64           `gorm:"not null" json:"subtotal"`                                     // 상품 합계
	MakingCharges     float64         `gorm:"not null" json:"making_charges"`                               // 공임 합계
	IsInterState      bool            `json:"is_inter_state"`                                               // 주 간 거래 여부
	CGST              float64         `json:"cgst"`
	SGST              float64         `json:"sgst"`
	IGST              float64         `json:"igst"`
	TotalGST          float64         `json:"total_gst"`
	Cess              float64         `json:"cess"`
	TotalTax          float64         `json:"total_tax"`
	GrandTotal        float64         `gorm:"not null" json:"grand_total"`   // 최종 결제 금액
	EstimatedDelivery time.Time       `json:"estimated_delivery"`            // 도착 예정일
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`        // 취소 시각
	CreatedAt         time.Time       `gorm:"index" json:"created_at"`       // 주문 시각
	UpdatedAt         time.Time       `json:"updated_at"`                    // 수정 시각
	DeliveryStatus    OrderStatus     `gorm:"-" json:"delivery_status"`      // 경과일 기준 배송 상태
	Items             []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"` // 주문 항목 목록
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                          // 주문 항목 ID
	OrderID       string    `gorm:"type:varchar(32);not null;index" json:"order_id"` // 주문 번호
	ProductID     string    `gorm:"type:varchar(32);not null;index" json:"product_id"` // 상품 ID
	ProductName   string    `gorm:"not null" json:"product_name"`                  // 주문 당시 상품명
	ImageURL      string    `json:"image_url"`                                     // 주문 당시 이미지
	Quantity      int       `gorm:"not null" json:"quantity"`                      // 수량
	UnitPrice     int64     `gorm:"not null" json:"unit_price"`                    // 주문 당시 단가
	MakingCharges float64   `json:"making_charges"`                                // 공임 금액 × 수량
	LineTotal     int64     `gorm:"not null" json:"line_total"`                    // 단가 × 수량
	CreatedAt     time.Time `json:"created_at"`                                    // 생성 시각
}

func (OrderItem) TableName() string {
	return "order_items"
}

// TrackingEvent 배송 추적 이벤트
type TrackingEvent struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Completed   bool      `json:"completed"`
}

// OrderTracking 운송장 조회 결과
type OrderTracking struct {
	OrderID           string          `json:"order_id"`
	TrackingNumber    string          `json:"tracking_number"`
	Status            OrderStatus     `json:"status"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
	DeliveredAt       *time.Time      `json:"delivered_at,omitempty"`
	Events            []TrackingEvent `json:"events"`
}
