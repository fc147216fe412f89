package service

import (
	"sync"
	"testing"
	"time"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/db"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testRateTable 계산이 쉬운 고정 시세
var testRateTable = pricing.RateTable{
	Gold:     pricing.GoldRates{K24: 10000, K22: 9000, K18: 7500},
	Silver:   pricing.SilverRates{Pure: 100, S925: 90},
	Platinum: pricing.PlatinumRates{Pure: 3000},
}

type staticRates struct {
	mu   sync.Mutex
	snap pricing.MetalRateSnapshot
}

func newStaticRates() *staticRates {
	return &staticRates{snap: testRateTable.Snapshot(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))}
}

func (s *staticRates) Snapshot() pricing.MetalRateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *staticRates) set(snap pricing.MetalRateSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// testClock 호출마다 1ms씩 진행하는 시계
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupServiceDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func int64Ptr(v int64) *int64 {
	return &v
}

// createTestProducts g22: 10g 22k 10% → 99000, s925: 100g 925 10% → 9900, base: 순도 없음 → 5000
func createTestProducts(t *testing.T, testDB *gorm.DB) []model.Product {
	products := []model.Product{
		{
			ID:                   "g22",
			Name:                 "Test Gold Bangle",
			Category:             "22k Gold Bangles",
			Weight:               10,
			Karat:                "22k",
			MakingChargesPercent: 10,
			BasePrice:            50000,
			BaseCompareAtPrice:   int64Ptr(55000),
			InStock:              true,
			SortOrder:            1,
		},
		{
			ID:                   "s925",
			Name:                 "Test Silver Necklace",
			Category:             "Pure Silver Jewelry",
			Weight:               100,
			SilverPurity:         "925",
			MakingChargesPercent: 10,
			BasePrice:            4000,
			InStock:              true,
			SortOrder:            2,
		},
		{
			ID:        "base",
			Name:      "Test Gift Card",
			Category:  "Gifts",
			Weight:    1,
			BasePrice: 5000,
			InStock:   true,
			SortOrder: 3,
		},
	}
	require.NoError(t, testDB.Create(&products).Error)
	return products
}
