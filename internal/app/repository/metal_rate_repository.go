package repository

import (
	"time"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"gorm.io/gorm"
)

// MetalRateRepository 시세 이력 저장소 인터페이스
type MetalRateRepository interface {
	CreateBatch(rates []model.MetalRate) error
	FindLatestBefore(metal, tier string, before time.Time) (*model.MetalRate, error)
	FindByRange(metal, tier string, start, end time.Time) ([]model.MetalRate, error)
}

type metalRateRepository struct {
	db *gorm.DB
}

// NewMetalRateRepository 시세 이력 저장소 생성
func NewMetalRateRepository(db *gorm.DB) MetalRateRepository {
	return &metalRateRepository{db: db}
}

// CreateBatch 스냅샷 하나의 등급별 시세를 한 번에 저장
func (r *metalRateRepository) CreateBatch(rates []model.MetalRate) error {
	if len(rates) == 0 {
		return nil
	}
	if err := r.db.Create(&rates).Error; err != nil {
		logger.Error("Failed to create metal rates", err, map[string]interface{}{
			"count": len(rates),
		})
		return err
	}
	return nil
}

// FindLatestBefore 기준 시각 이전의 가장 최근 시세. 없으면 nil
func (r *metalRateRepository) FindLatestBefore(metal, tier string, before time.Time) (*model.MetalRate, error) {
	var rate model.MetalRate
	err := r.db.Where("metal = ? AND tier = ? AND recorded_at < ?", metal, tier, before).
		Order("recorded_at DESC").
		Order("id DESC").
		First(&rate).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find previous metal rate", err, map[string]interface{}{
			"metal": metal,
			"tier":  tier,
		})
		return nil, err
	}
	return &rate, nil
}

// FindByRange 기간별 시세 (오래된 순)
func (r *metalRateRepository) FindByRange(metal, tier string, start, end time.Time) ([]model.MetalRate, error) {
	var rates []model.MetalRate
	err := r.db.Where("metal = ? AND tier = ? AND recorded_at >= ? AND recorded_at <= ?", metal, tier, start, end).
		Order("recorded_at ASC").
		Order("id ASC").
		Find(&rates).Error
	if err != nil {
		logger.Error("Failed to find metal rates by range", err, map[string]interface{}{
			"metal": metal,
			"tier":  tier,
		})
		return nil, err
	}
	return rates, nil
}
