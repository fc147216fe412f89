package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// TroyOunceGrams 1 트로이 온스 = 31.1035 g
const TroyOunceGrams = 31.1035

// 순도 계수
const (
	Purity22K       = 0.916
	Purity18K       = 0.75
	PuritySilver925 = 0.925
)

var ErrInvalidRates = errors.New("invalid metal rates")

// Metal 귀금속 종류
type Metal string

const (
	MetalGold     Metal = "gold"
	MetalSilver   Metal = "silver"
	MetalPlatinum Metal = "platinum"
)

// Metals 조회 순서 (금 → 은 → 백금)
var Metals = []Metal{MetalGold, MetalSilver, MetalPlatinum}

// ParseMetal 문자열을 Metal로 변환
func ParseMetal(s string) (Metal, bool) {
	switch Metal(s) {
	case MetalGold, MetalSilver, MetalPlatinum:
		return Metal(s), true
	}
	return "", false
}

// Karat 금 순도
type Karat string

const (
	Karat24 Karat = "24k"
	Karat22 Karat = "22k"
	Karat18 Karat = "18k"
)

// SilverPurity 은 순도
type SilverPurity string

const (
	SilverPure SilverPurity = "pure"
	Silver925  SilverPurity = "925"
)

// PlatinumPurity 백금 순도
type PlatinumPurity string

const (
	PlatinumPure PlatinumPurity = "pure"
)

// Tiers 금속별 등급 목록
func Tiers(m Metal) []string {
	switch m {
	case MetalGold:
		return []string{string(Karat24), string(Karat22), string(Karat18)}
	case MetalSilver:
		return []string{string(SilverPure), string(Silver925)}
	case MetalPlatinum:
		return []string{string(PlatinumPure)}
	}
	return nil
}

// RateSource 시세 출처
type RateSource string

const (
	SourceLive     RateSource = "live"
	SourceFallback RateSource = "fallback"
)

// GoldRates 금 g당 시세 (INR)
type GoldRates struct {
	K24 float64 `json:"24k"`
	K22 float64 `json:"22k"`
	K18 float64 `json:"18k"`
}

func (g GoldRates) Rate(k Karat) (float64, bool) {
	switch k {
	case Karat24:
		return g.K24, true
	case Karat22:
		return g.K22, true
	case Karat18:
		return g.K18, true
	}
	return 0, false
}

func (g GoldRates) Validate() error {
	if !positive(g.K24) || !positive(g.K22) || !positive(g.K18) {
		return fmt.Errorf("%w: gold rates must be positive", ErrInvalidRates)
	}
	if g.K18 > g.K22 || g.K22 > g.K24 {
		return fmt.Errorf("%w: gold rates must satisfy 18k <= 22k <= 24k", ErrInvalidRates)
	}
	return nil
}

// SilverRates 은 g당 시세 (INR)
type SilverRates struct {
	Pure float64 `json:"pure"`
	S925 float64 `json:"925"`
}

func (s SilverRates) Rate(p SilverPurity) (float64, bool) {
	switch p {
	case SilverPure:
		return s.Pure, true
	case Silver925:
		return s.S925, true
	}
	return 0, false
}

func (s SilverRates) Validate() error {
	if !positive(s.Pure) || !positive(s.S925) {
		return fmt.Errorf("%w: silver rates must be positive", ErrInvalidRates)
	}
	if s.S925 > s.Pure {
		return fmt.Errorf("%w: silver rates must satisfy 925 <= pure", ErrInvalidRates)
	}
	return nil
}

// PlatinumRates 백금 g당 시세 (INR)
type PlatinumRates struct {
	Pure float64 `json:"pure"`
}

func (p PlatinumRates) Rate(purity PlatinumPurity) (float64, bool) {
	if purity == PlatinumPure {
		return p.Pure, true
	}
	return 0, false
}

func (p PlatinumRates) Validate() error {
	if !positive(p.Pure) {
		return fmt.Errorf("%w: platinum rate must be positive", ErrInvalidRates)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// PerGram 트로이 온스 시세를 g당 시세로 변환
func PerGram(perOunce float64) float64 {
	return perOunce / TroyOunceGrams
}

// DeriveGoldRates 24k g당 시세에서 22k/18k 산출
// 공급처가 22k/18k를 주면 그대로 반올림해 사용 (0이면 산출)
func DeriveGoldRates(gram24k, gram22k, gram18k float64) GoldRates {
	if gram22k <= 0 {
		gram22k = gram24k * Purity22K
	}
	if gram18k <= 0 {
		gram18k = gram24k * Purity18K
	}
	return GoldRates{
		K24: math.Round(gram24k),
		K22: math.Round(gram22k),
		K18: math.Round(gram18k),
	}
}

// DeriveSilverRates 온스당 은 시세에서 pure/925 산출
func DeriveSilverRates(perOunce float64) SilverRates {
	pure := PerGram(perOunce)
	return SilverRates{
		Pure: math.Round(pure),
		S925: math.Round(pure * PuritySilver925),
	}
}

// DerivePlatinumRates 온스당 백금 시세에서 pure 산출
func DerivePlatinumRates(perOunce float64) PlatinumRates {
	return PlatinumRates{Pure: math.Round(PerGram(perOunce))}
}

// MetalRateSnapshot 특정 시점의 시세 묶음. 생성 후 변경되지 않으며
// With* 메서드는 항상 새 스냅샷을 반환한다.
type MetalRateSnapshot struct {
	gold     *GoldRates
	silver   *SilverRates
	platinum *PlatinumRates
	sources  map[Metal]RateSource
	asOf     time.Time
}

// Gold 금 시세 (없으면 false)
func (s MetalRateSnapshot) Gold() (GoldRates, bool) {
	if s.gold == nil {
		return GoldRates{}, false
	}
	return *s.gold, true
}

// Silver 은 시세 (없으면 false)
func (s MetalRateSnapshot) Silver() (SilverRates, bool) {
	if s.silver == nil {
		return SilverRates{}, false
	}
	return *s.silver, true
}

// Platinum 백금 시세 (없으면 false)
func (s MetalRateSnapshot) Platinum() (PlatinumRates, bool) {
	if s.platinum == nil {
		return PlatinumRates{}, false
	}
	return *s.platinum, true
}

// Source 금속별 시세 출처. 시세가 없으면 빈 문자열
func (s MetalRateSnapshot) Source(m Metal) RateSource {
	return s.sources[m]
}

func (s MetalRateSnapshot) AsOf() time.Time {
	return s.asOf
}

// IsEmpty 어떤 시세도 없는지 여부
func (s MetalRateSnapshot) IsEmpty() bool {
	return s.gold == nil && s.silver == nil && s.platinum == nil
}

// Rate 금속/등급 문자열로 g당 시세 조회
func (s MetalRateSnapshot) Rate(m Metal, tier string) (float64, bool) {
	switch m {
	case MetalGold:
		if g, ok := s.Gold(); ok {
			return g.Rate(Karat(tier))
		}
	case MetalSilver:
		if sv, ok := s.Silver(); ok {
			return sv.Rate(SilverPurity(tier))
		}
	case MetalPlatinum:
		if p, ok := s.Platinum(); ok {
			return p.Rate(PlatinumPurity(tier))
		}
	}
	return 0, false
}

func (s MetalRateSnapshot) withSource(m Metal, src RateSource) map[Metal]RateSource {
	sources := make(map[Metal]RateSource, len(s.sources)+1)
	for k, v := range s.sources {
		sources[k] = v
	}
	sources[m] = src
	return sources
}

// WithGold 금 시세를 교체한 새 스냅샷
func (s MetalRateSnapshot) WithGold(g GoldRates, src RateSource) MetalRateSnapshot {
	out := s
	out.gold = &g
	out.sources = s.withSource(MetalGold, src)
	return out
}

// WithSilver 은 시세를 교체한 새 스냅샷
func (s MetalRateSnapshot) WithSilver(sv SilverRates, src RateSource) MetalRateSnapshot {
	out := s
	out.silver = &sv
	out.sources = s.withSource(MetalSilver, src)
	return out
}

// WithPlatinum 백금 시세를 교체한 새 스냅샷
func (s MetalRateSnapshot) WithPlatinum(p PlatinumRates, src RateSource) MetalRateSnapshot {
	out := s
	out.platinum = &p
	out.sources = s.withSource(MetalPlatinum, src)
	return out
}

// WithAsOf 기준 시각을 바꾼 새 스냅샷
func (s MetalRateSnapshot) WithAsOf(t time.Time) MetalRateSnapshot {
	out := s
	out.asOf = t
	return out
}

// Validate 존재하는 시세의 불변 조건 검사
func (s MetalRateSnapshot) Validate() error {
	if s.gold != nil {
		if err := s.gold.Validate(); err != nil {
			return err
		}
	}
	if s.silver != nil {
		if err := s.silver.Validate(); err != nil {
			return err
		}
	}
	if s.platinum != nil {
		if err := s.platinum.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type snapshotJSON struct {
	Gold     *GoldRates            `json:"gold"`
	Silver   *SilverRates          `json:"silver"`
	Platinum *PlatinumRates        `json:"platinum"`
	Sources  map[Metal]RateSource `json:"sources"`
	AsOf     time.Time             `json:"as_of"`
}

func (s MetalRateSnapshot) MarshalJSON() ([]byte, error) {
	sources := s.sources
	if sources == nil {
		sources = map[Metal]RateSource{}
	}
	return json.Marshal(snapshotJSON{
		Gold:     s.gold,
		Silver:   s.silver,
		Platinum: s.platinum,
		Sources:  sources,
		AsOf:     s.asOf,
	})
}

func (s *MetalRateSnapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := MetalRateSnapshot{
		gold:     raw.Gold,
		silver:   raw.Silver,
		platinum: raw.Platinum,
		sources:  raw.Sources,
		asOf:     raw.AsOf,
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*s = out
	return nil
}

// RateTable 전체 시세 표. 폴백 시세 정의에 사용
type RateTable struct {
	Gold     GoldRates     `json:"gold"`
	Silver   SilverRates   `json:"silver"`
	Platinum PlatinumRates `json:"platinum"`
}

// DefaultFallbackRates 외부 시세를 받지 못할 때 사용하는 기본 시세
var DefaultFallbackRates = RateTable{
	Gold:     GoldRates{K24: 10260, K22: 9405, K18: 7775},
	Silver:   SilverRates{Pure: 130, S925: 120},
	Platinum: PlatinumRates{Pure: 3200},
}

func (t RateTable) Validate() error {
	if err := t.Gold.Validate(); err != nil {
		return err
	}
	if err := t.Silver.Validate(); err != nil {
		return err
	}
	return t.Platinum.Validate()
}

// Snapshot 표 전체를 폴백 출처로 표시한 스냅샷
func (t RateTable) Snapshot(asOf time.Time) MetalRateSnapshot {
	return MetalRateSnapshot{}.
		WithGold(t.Gold, SourceFallback).
		WithSilver(t.Silver, SourceFallback).
		WithPlatinum(t.Platinum, SourceFallback).
		WithAsOf(asOf)
}
