package model

import (
	"time"
)

// MetalRate 게시된 시세 이력 (금속/등급별 1행)
type MetalRate struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                           // 고유 ID
	Metal      string    `gorm:"type:varchar(10);not null;index:idx_metal_tier_time" json:"metal"` // 금속
	Tier       string    `gorm:"type:varchar(8);not null;index:idx_metal_tier_time" json:"tier"`   // 순도 등급
	Rate       float64   `gorm:"not null" json:"rate"`                                           // g당 시세 (INR)
	Source     string    `gorm:"type:varchar(10);not null" json:"source"`                        // live | fallback
	RecordedAt time.Time `gorm:"not null;index:idx_metal_tier_time" json:"recorded_at"`          // 시세 기준 시각
	CreatedAt  time.Time `json:"created_at"`                                                     // 생성 시각
}

func (MetalRate) TableName() string {
	return "metal_rates"
}

// MetalRateResponse API 응답용 등급별 시세
type MetalRateResponse struct {
	Metal       string    `json:"metal"`
	Tier        string    `json:"tier"`
	RatePerGram float64   `json:"rate_per_gram"`
	Source      string    `json:"source"`
	AsOf        time.Time `json:"as_of"`

	// 전일 대비 변동
	PreviousDayRate *float64 `json:"previous_day_rate,omitempty"` // 전일 시세
	ChangeAmount    *float64 `json:"change_amount,omitempty"`     // 전일 대비 변동 금액
	ChangePercent   *float64 `json:"change_percent,omitempty"`    // 전일 대비 변동률 (%)
}

// MetalRateHistoryItem 일자별 시세 이력
type MetalRateHistoryItem struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Rate   float64 `json:"rate"`
	Source string  `json:"source"`
}
