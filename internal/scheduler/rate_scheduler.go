package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jrbgold/jrb-backend/internal/rates"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultSchedule 30분마다 시세 갱신
const DefaultSchedule = "@every 30m"

// Refresher 한 번의 시세 갱신 주기를 실행한다
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RateScheduler 시세 자동 갱신 스케줄러
type RateScheduler struct {
	cron      *cron.Cron
	refresher Refresher
	schedule  string

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewRateScheduler schedule이 비어 있으면 DefaultSchedule
func NewRateScheduler(refresher Refresher, schedule string) *RateScheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RateScheduler{
		cron:      cron.New(),
		refresher: refresher,
		schedule:  schedule,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start 스케줄러 시작
func (s *RateScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		logger.Error("Failed to add cron job for metal rate refresh", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Metal rate scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *RateScheduler) runOnce() {
	start := time.Now()
	logger.Info("Starting scheduled metal rate refresh")

	if err := s.refresher.Refresh(s.ctx); err != nil {
		if errors.Is(err, rates.ErrRefreshInProgress) {
			logger.Info("Scheduled metal rate refresh skipped: cycle already running")
			return
		}
		logger.Error("Scheduled metal rate refresh failed", err)
		return
	}

	logger.Info("Scheduled metal rate refresh finished", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// Stop 진행 중인 갱신을 취소하고 작업이 끝날 때까지 기다린다
func (s *RateScheduler) Stop() {
	s.once.Do(func() {
		logger.Info("Stopping metal rate scheduler...")
		s.cancel()
		<-s.cron.Stop().Done()
		logger.Info("Metal rate scheduler stopped")
	})
}
