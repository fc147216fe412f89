package pricing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFallbackRates(t *testing.T) {
	require.NoError(t, DefaultFallbackRates.Validate())

	snap := DefaultFallbackRates.Snapshot(time.Now())
	gold, ok := snap.Gold()
	require.True(t, ok)
	assert.Equal(t, GoldRates{K24: 10260, K22: 9405, K18: 7775}, gold)

	silver, ok := snap.Silver()
	require.True(t, ok)
	assert.Equal(t, SilverRates{Pure: 130, S925: 120}, silver)

	platinum, ok := snap.Platinum()
	require.True(t, ok)
	assert.Equal(t, PlatinumRates{Pure: 3200}, platinum)

	for _, m := range Metals {
		assert.Equal(t, SourceFallback, snap.Source(m))
	}
}

func TestDeriveGoldRates(t *testing.T) {
	t.Run("derives missing tiers", func(t *testing.T) {
		g := DeriveGoldRates(10000.4, 0, 0)
		assert.Equal(t, GoldRates{K24: 10000, K22: 9160, K18: 7500}, g)
		assert.NoError(t, g.Validate())
	})

	t.Run("uses supplied tiers", func(t *testing.T) {
		g := DeriveGoldRates(10260.2, 9405.6, 7775.1)
		assert.Equal(t, GoldRates{K24: 10260, K22: 9406, K18: 7775}, g)
	})
}

func TestDeriveSilverAndPlatinumRates(t *testing.T) {
	// 4043.455 / 31.1035 = 130.0
	s := DeriveSilverRates(4043.455)
	assert.Equal(t, SilverRates{Pure: 130, S925: 120}, s)

	p := DerivePlatinumRates(99531.2)
	assert.Equal(t, PlatinumRates{Pure: 3200}, p)
}

func TestRatesValidate(t *testing.T) {
	assert.ErrorIs(t, GoldRates{K24: 100, K22: 120, K18: 80}.Validate(), ErrInvalidRates)
	assert.ErrorIs(t, GoldRates{K24: 100, K22: 90, K18: 0}.Validate(), ErrInvalidRates)
	assert.ErrorIs(t, SilverRates{Pure: 100, S925: 120}.Validate(), ErrInvalidRates)
	assert.ErrorIs(t, PlatinumRates{Pure: -1}.Validate(), ErrInvalidRates)

	assert.NoError(t, GoldRates{K24: 100, K22: 100, K18: 100}.Validate())
	assert.NoError(t, SilverRates{Pure: 10, S925: 9}.Validate())
}

func TestMetalRateSnapshot_WithDoesNotMutate(t *testing.T) {
	base := DefaultFallbackRates.Snapshot(time.Now())
	updated := base.WithGold(GoldRates{K24: 11000, K22: 10000, K18: 8000}, SourceLive)

	g, _ := base.Gold()
	assert.Equal(t, float64(10260), g.K24)
	assert.Equal(t, SourceFallback, base.Source(MetalGold))

	g, _ = updated.Gold()
	assert.Equal(t, float64(11000), g.K24)
	assert.Equal(t, SourceLive, updated.Source(MetalGold))
	assert.Equal(t, SourceFallback, updated.Source(MetalSilver))
}

func TestMetalRateSnapshot_Rate(t *testing.T) {
	snap := DefaultFallbackRates.Snapshot(time.Now())

	r, ok := snap.Rate(MetalGold, "22k")
	assert.True(t, ok)
	assert.Equal(t, float64(9405), r)

	r, ok = snap.Rate(MetalSilver, "925")
	assert.True(t, ok)
	assert.Equal(t, float64(120), r)

	_, ok = snap.Rate(MetalGold, "14k")
	assert.False(t, ok)

	_, ok = MetalRateSnapshot{}.Rate(MetalPlatinum, "pure")
	assert.False(t, ok)
	assert.True(t, MetalRateSnapshot{}.IsEmpty())
}

func TestMetalRateSnapshot_JSON(t *testing.T) {
	asOf := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	snap := MetalRateSnapshot{}.
		WithGold(GoldRates{K24: 10300, K22: 9435, K18: 7725}, SourceLive).
		WithSilver(SilverRates{Pure: 130, S925: 120}, SourceFallback).
		WithAsOf(asOf)

	data, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"gold": {"24k": 10300, "22k": 9435, "18k": 7725},
		"silver": {"pure": 130, "925": 120},
		"platinum": null,
		"sources": {"gold": "live", "silver": "fallback"},
		"as_of": "2025-02-01T09:30:00Z"
	}`, string(data))

	var decoded MetalRateSnapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap, decoded)

	err = json.Unmarshal([]byte(`{"gold": {"24k": 100, "22k": 200, "18k": 50}}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidRates)
}

func TestParseMetal(t *testing.T) {
	m, ok := ParseMetal("silver")
	assert.True(t, ok)
	assert.Equal(t, MetalSilver, m)

	_, ok = ParseMetal("copper")
	assert.False(t, ok)

	assert.Equal(t, []string{"24k", "22k", "18k"}, Tiers(MetalGold))
}
