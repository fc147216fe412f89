package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/internal/rates"
	"github.com/jrbgold/jrb-backend/pkg/logger"
)

var (
	ErrInvalidMetalTier = errors.New("invalid metal or tier")
	ErrInvalidPeriod    = errors.New("invalid history period")
)

// RateProvider 시세 제공자 중 서비스가 사용하는 부분
type RateProvider interface {
	Snapshot() pricing.MetalRateSnapshot
	Status() rates.Status
	RefreshAsync(ctx context.Context) error
}

// RatesOverview 현재 시세 상태와 등급별 전일 대비 변동
type RatesOverview struct {
	rates.Status
	Tiers []model.MetalRateResponse `json:"tiers"`
}

// MetalRateService 시세 조회/이력 서비스 인터페이스
type MetalRateService interface {
	RecordSnapshot(snap pricing.MetalRateSnapshot) error
	Listener() rates.Listener
	GetCurrentRates() (*RatesOverview, error)
	GetHistory(metal, tier, period string) ([]model.MetalRateHistoryItem, error)
	RefreshRates(ctx context.Context) error
}

type metalRateService struct {
	repo     repository.MetalRateRepository
	provider RateProvider
	now      func() time.Time
}

// NewMetalRateService 시세 서비스 생성
func NewMetalRateService(repo repository.MetalRateRepository, provider RateProvider) MetalRateService {
	return &metalRateService{
		repo:     repo,
		provider: provider,
		now:      time.Now,
	}
}

// RecordSnapshot 스냅샷의 금속/등급별 시세를 이력에 1행씩 저장
func (s *metalRateService) RecordSnapshot(snap pricing.MetalRateSnapshot) error {
	rows := make([]model.MetalRate, 0, 6)
	for _, metal := range pricing.Metals {
		for _, tier := range pricing.Tiers(metal) {
			rate, ok := snap.Rate(metal, tier)
			if !ok {
				continue
			}
			rows = append(rows, model.MetalRate{
				Metal:      string(metal),
				Tier:       tier,
				Rate:       rate,
				Source:     string(snap.Source(metal)),
				RecordedAt: snap.AsOf(),
			})
		}
	}
	if err := s.repo.CreateBatch(rows); err != nil {
		return fmt.Errorf("record metal rates: %w", err)
	}
	logger.Debug("Metal rate snapshot recorded", map[string]interface{}{
		"rows":  len(rows),
		"as_of": snap.AsOf(),
	})
	return nil
}

// Listener 게시된 스냅샷을 이력에 기록하는 리스너
func (s *metalRateService) Listener() rates.Listener {
	return func(snap pricing.MetalRateSnapshot) {
		if err := s.RecordSnapshot(snap); err != nil {
			logger.Error("Failed to record metal rate history", err)
		}
	}
}

// GetCurrentRates 현재 시세와 전일(시세 기준일 이전 마지막 기록) 대비 변동
func (s *metalRateService) GetCurrentRates() (*RatesOverview, error) {
	status := s.provider.Status()
	snap := status.Rates
	asOf := snap.AsOf()
	startOfDay := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())

	overview := &RatesOverview{Status: status}
	for _, metal := range pricing.Metals {
		for _, tier := range pricing.Tiers(metal) {
			rate, ok := snap.Rate(metal, tier)
			if !ok {
				continue
			}
			resp := model.MetalRateResponse{
				Metal:       string(metal),
				Tier:        tier,
				RatePerGram: rate,
				Source:      string(snap.Source(metal)),
				AsOf:        asOf,
			}

			previous, err := s.repo.FindLatestBefore(string(metal), tier, startOfDay)
			if err != nil {
				return nil, err
			}
			if previous != nil && previous.Rate > 0 {
				prev := previous.Rate
				change := rate - prev
				percent := change / prev * 100
				resp.PreviousDayRate = &prev
				resp.ChangeAmount = &change
				resp.ChangePercent = &percent
			}
			overview.Tiers = append(overview.Tiers, resp)
		}
	}
	return overview, nil
}

// periodStart 기간 문자열의 시작 시각. all은 zero time
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "1w":
		return now.AddDate(0, 0, -7), nil
	case "", "1m":
		return now.AddDate(0, -1, 0), nil
	case "3m":
		return now.AddDate(0, -3, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "all":
		return time.Time{}, nil
	}
	return time.Time{}, ErrInvalidPeriod
}

func validTier(metal pricing.Metal, tier string) bool {
	for _, t := range pricing.Tiers(metal) {
		if t == tier {
			return true
		}
	}
	return false
}

// GetHistory 일자별 마지막 시세 (오래된 순)
func (s *metalRateService) GetHistory(metalName, tier, period string) ([]model.MetalRateHistoryItem, error) {
	metal, ok := pricing.ParseMetal(metalName)
	if !ok || !validTier(metal, tier) {
		return nil, ErrInvalidMetalTier
	}

	now := s.now()
	start, err := periodStart(period, now)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByRange(string(metal), tier, start, now)
	if err != nil {
		logger.Error("Failed to get metal rate history", err, map[string]interface{}{
			"metal":  metalName,
			"tier":   tier,
			"period": period,
		})
		return nil, err
	}

	history := make([]model.MetalRateHistoryItem, 0, len(rows))
	for _, row := range rows {
		item := model.MetalRateHistoryItem{
			Date:   row.RecordedAt.Format("2006-01-02"),
			Rate:   row.Rate,
			Source: row.Source,
		}
		if n := len(history); n > 0 && history[n-1].Date == item.Date {
			history[n-1] = item
			continue
		}
		history = append(history, item)
	}
	return history, nil
}

// RefreshRates 요청 취소와 무관하게 백그라운드 갱신 시작
func (s *metalRateService) RefreshRates(ctx context.Context) error {
	if err := s.provider.RefreshAsync(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	logger.Info("Manual metal rate refresh started")
	return nil
}
