package rates

import (
	"time"

	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/prometheus/client_golang/prometheus"
)

// 조회 결과 라벨
const (
	OutcomeLive          = "live"
	OutcomeFallback      = "fallback"
	OutcomeQuotaExceeded = "quota_exceeded"
)

// Metrics 시세 조회 지표. nil 이면 아무것도 기록하지 않는다
type Metrics struct {
	fetchTotal      *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	refreshCycles   prometheus.Counter
	ratePerGram     *prometheus.GaugeVec
}

// NewMetrics 지표 생성 및 등록
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jrb_metal_rate_fetch_total",
			Help: "Metal rate fetches by metal and outcome.",
		}, []string{"metal", "outcome"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "jrb_metal_rate_refresh_duration_seconds",
			Help:    "Duration of a full metal rate refresh cycle.",
			Buckets: []float64{0.5, 1, 2, 4, 6, 10, 20, 40},
		}),
		refreshCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "jrb_metal_rate_refresh_cycles_total",
			Help: "Completed metal rate refresh cycles.",
		}),
		ratePerGram: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "jrb_metal_rate_per_gram",
			Help: "Currently published per-gram metal rate in INR.",
		}, []string{"metal", "tier"}),
	}

	reg.MustRegister(m.fetchTotal, m.refreshDuration, m.refreshCycles, m.ratePerGram)
	return m
}

func (m *Metrics) observeFetch(metal pricing.Metal, outcome string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(string(metal), outcome).Inc()
}

func (m *Metrics) observeCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.refreshDuration.Observe(d.Seconds())
	m.refreshCycles.Inc()
}

// SetRates 게시된 스냅샷 값을 게이지에 반영
func (m *Metrics) SetRates(snap pricing.MetalRateSnapshot) {
	if m == nil {
		return
	}
	for _, metal := range pricing.Metals {
		for _, tier := range pricing.Tiers(metal) {
			if rate, ok := snap.Rate(metal, tier); ok {
				m.ratePerGram.WithLabelValues(string(metal), tier).Set(rate)
			}
		}
	}
}
