package db

import (
	"testing"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSeed_IsIdempotent(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	require.NoError(t, Seed(testDB))
	require.NoError(t, Seed(testDB))

	var products, users int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&products).Error)
	require.NoError(t, testDB.Model(&model.User{}).Count(&users).Error)
	assert.Equal(t, int64(15), products)
	assert.Equal(t, int64(2), users)
}

func TestSeed_CatalogRoundTrip(t *testing.T) {
	testDB, err := SetupSeededTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	var bangle model.Product
	require.NoError(t, testDB.First(&bangle, "id = ?", "1").Error)

	assert.Equal(t, "Elegant Gold Bangle", bangle.Name)
	assert.Equal(t, "22k", bangle.Karat)
	assert.Equal(t, 8.5, bangle.Weight)
	require.NotNil(t, bangle.BaseCompareAtPrice)
	assert.Equal(t, int64(48500), *bangle.BaseCompareAtPrice)
	assert.Equal(t, []string{"no-wastage", "new"}, bangle.Badges)
	require.NotEmpty(t, bangle.Specifications)
	assert.Equal(t, model.ProductSpec{Label: "Metal Purity", Value: "22k Gold (916 Hallmark)"}, bangle.Specifications[0])
	assert.Len(t, bangle.Features, 5)
	assert.True(t, bangle.InStock)
}

func TestSeed_DemoUsers(t *testing.T) {
	testDB, err := SetupSeededTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(testDB)

	var admin model.User
	require.NoError(t, testDB.Where("email = ?", "admin@jrbgold.com").First(&admin).Error)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.Equal(t, "Admin User", admin.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))
}

func TestCatalogProducts_PricingSpecsAreValid(t *testing.T) {
	products := CatalogProducts()
	require.Len(t, products, 15)

	seen := map[string]bool{}
	for _, p := range products {
		assert.NoError(t, p.PricingSpec().Validate(), p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}
