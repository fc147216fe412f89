package rates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/logger"
)

// DefaultInterCallDelay 금속별 조회 사이 대기 시간 (요청 한도 보호)
const DefaultInterCallDelay = 2 * time.Second

var ErrRefreshInProgress = errors.New("metal rate refresh already in progress")

// Listener 새 스냅샷이 게시될 때마다 호출된다
type Listener func(pricing.MetalRateSnapshot)

// Status 시세 제공자 현재 상태
type Status struct {
	Rates           pricing.MetalRateSnapshot `json:"rates"`
	Loading         bool                      `json:"loading"`
	Error           string                    `json:"error,omitempty"`
	Warnings        []string                  `json:"warnings,omitempty"`
	UpdateCount     uint64                    `json:"update_count"`
	LastRefreshedAt *time.Time                `json:"last_refreshed_at,omitempty"`
}

// Option 제공자 설정 함수
type Option func(*Provider)

// WithFallback 폴백 시세 표 지정
func WithFallback(table pricing.RateTable) Option {
	return func(p *Provider) { p.fallback = table }
}

// WithInterCallDelay 금속별 조회 사이 대기 시간 지정
func WithInterCallDelay(d time.Duration) Option {
	return func(p *Provider) { p.delay = d }
}

// WithClock 현재 시각 함수 지정 (테스트용)
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithSleeper 대기 함수 지정 (테스트용)
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Provider) { p.sleep = sleep }
}

// WithMetrics 지표 수집기 지정
func WithMetrics(m *Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// Provider 금/은/백금 시세 제공자.
// 생성 즉시 폴백 시세를 게시하므로 Snapshot 은 항상 값이 있다.
type Provider struct {
	source   QuoteSource
	fallback pricing.RateTable
	delay    time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
	metrics  *Metrics

	running atomic.Bool

	mu            sync.RWMutex
	snapshot      pricing.MetalRateSnapshot
	warnings      []string
	updateCount   uint64
	lastRefreshed time.Time
	listeners     map[int]Listener
	nextListener  int
}

// NewProvider 시세 제공자 생성
func NewProvider(source QuoteSource, opts ...Option) *Provider {
	p := &Provider{
		source:    source,
		fallback:  pricing.DefaultFallbackRates,
		delay:     DefaultInterCallDelay,
		now:       time.Now,
		sleep:     sleepContext,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.snapshot = p.fallback.Snapshot(p.now())
	p.metrics.SetRates(p.snapshot)
	return p
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Snapshot 현재 게시된 시세
func (p *Provider) Snapshot() pricing.MetalRateSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Fallback 주입된 폴백 시세 표
func (p *Provider) Fallback() pricing.RateTable {
	return p.fallback
}

// Status 시세, 갱신 중 여부, 경고, 갱신 횟수
func (p *Provider) Status() Status {
	p.mu.RLock()
	defer p.mu.RUnlock()

	st := Status{
		Rates:       p.snapshot,
		Loading:     p.running.Load(),
		UpdateCount: p.updateCount,
	}
	if len(p.warnings) > 0 {
		st.Warnings = append([]string(nil), p.warnings...)
		st.Error = p.warnings[len(p.warnings)-1]
	}
	if !p.lastRefreshed.IsZero() {
		t := p.lastRefreshed
		st.LastRefreshedAt = &t
	}
	return st
}

// Subscribe 게시 알림 등록. 반환된 함수로 해제
func (p *Provider) Subscribe(l Listener) func() {
	p.mu.Lock()
	id := p.nextListener
	p.nextListener++
	p.listeners[id] = l
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// Restore 캐시된 스냅샷으로 초기 시세를 교체한다.
// 아직 한 번도 갱신이 끝나지 않았을 때만 적용된다.
func (p *Provider) Restore(snap pricing.MetalRateSnapshot) bool {
	if snap.IsEmpty() || snap.Validate() != nil {
		return false
	}

	p.mu.Lock()
	if p.updateCount > 0 || p.running.Load() {
		p.mu.Unlock()
		return false
	}
	if _, ok := snap.Gold(); !ok {
		snap = snap.WithGold(p.fallback.Gold, pricing.SourceFallback)
	}
	if _, ok := snap.Silver(); !ok {
		snap = snap.WithSilver(p.fallback.Silver, pricing.SourceFallback)
	}
	if _, ok := snap.Platinum(); !ok {
		snap = snap.WithPlatinum(p.fallback.Platinum, pricing.SourceFallback)
	}
	p.snapshot = snap
	p.mu.Unlock()

	p.metrics.SetRates(snap)
	logger.Info("Restored cached metal rates", map[string]interface{}{
		"as_of": snap.AsOf(),
	})
	return true
}

// Refresh 금 → 은 → 백금 순서로 시세를 조회해 새 스냅샷을 게시한다.
// 이미 갱신 중이면 ErrRefreshInProgress.
func (p *Provider) Refresh(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		logger.Debug("Metal rate refresh skipped: already running")
		return ErrRefreshInProgress
	}
	defer p.running.Store(false)
	return p.refresh(ctx)
}

// RefreshAsync 갱신을 백그라운드로 시작한다.
// 이미 갱신 중이면 즉시 ErrRefreshInProgress.
func (p *Provider) RefreshAsync(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrRefreshInProgress
	}
	go func() {
		defer p.running.Store(false)
		if err := p.refresh(ctx); err != nil {
			logger.Warn("Background metal rate refresh interrupted", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
	return nil
}

func (p *Provider) refresh(ctx context.Context) error {
	start := p.now()
	logger.Info("Refreshing metal rates")

	p.mu.Lock()
	p.warnings = nil
	next := p.snapshot
	p.mu.Unlock()

	var warnings []string
	for i, metal := range pricing.Metals {
		if i > 0 {
			if err := p.sleep(ctx, p.delay); err != nil {
				p.publish(next, warnings, false)
				return err
			}
		}

		updated, warning := p.fetchMetal(ctx, metal, next)
		if ctx.Err() != nil {
			p.publish(next, warnings, false)
			return ctx.Err()
		}
		next = updated
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	p.publish(next, warnings, true)
	p.metrics.observeCycle(p.now().Sub(start))

	logger.Info("Metal rates refreshed", map[string]interface{}{
		"gold_source":     next.Source(pricing.MetalGold),
		"silver_source":   next.Source(pricing.MetalSilver),
		"platinum_source": next.Source(pricing.MetalPlatinum),
		"warnings":        len(warnings),
	})
	return nil
}

func (p *Provider) fetchMetal(ctx context.Context, metal pricing.Metal, snap pricing.MetalRateSnapshot) (pricing.MetalRateSnapshot, string) {
	var err error
	switch metal {
	case pricing.MetalGold:
		var g pricing.GoldRates
		if g, err = p.source.FetchGold(ctx); err == nil {
			p.metrics.observeFetch(metal, OutcomeLive)
			return snap.WithGold(g, pricing.SourceLive), ""
		}
		snap = snap.WithGold(p.fallback.Gold, pricing.SourceFallback)
	case pricing.MetalSilver:
		var s pricing.SilverRates
		if s, err = p.source.FetchSilver(ctx); err == nil {
			p.metrics.observeFetch(metal, OutcomeLive)
			return snap.WithSilver(s, pricing.SourceLive), ""
		}
		snap = snap.WithSilver(p.fallback.Silver, pricing.SourceFallback)
	case pricing.MetalPlatinum:
		var pt pricing.PlatinumRates
		if pt, err = p.source.FetchPlatinum(ctx); err == nil {
			p.metrics.observeFetch(metal, OutcomeLive)
			return snap.WithPlatinum(pt, pricing.SourceLive), ""
		}
		snap = snap.WithPlatinum(p.fallback.Platinum, pricing.SourceFallback)
	}

	fields := map[string]interface{}{"metal": metal}
	if errors.Is(err, ErrQuotaExceeded) {
		p.metrics.observeFetch(metal, OutcomeQuotaExceeded)
		logger.Warn("Metal rate API quota exceeded, using fallback rates", fields)
	} else {
		p.metrics.observeFetch(metal, OutcomeFallback)
		logger.Error("Failed to fetch live metal rates, using fallback rates", err, fields)
	}
	return snap, fmt.Sprintf("Failed to fetch live %s rates. Using fallback rates.", metal)
}

func (p *Provider) publish(snap pricing.MetalRateSnapshot, warnings []string, completed bool) {
	now := p.now()
	snap = snap.WithAsOf(now)

	p.mu.Lock()
	p.snapshot = snap
	p.warnings = warnings
	if completed {
		p.updateCount++
		p.lastRefreshed = now
	}
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	p.metrics.SetRates(snap)
	for _, l := range listeners {
		l(snap)
	}
}
