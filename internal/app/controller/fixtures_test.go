package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/db"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/pricing"
	"github.com/jrbgold/jrb-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

var testAsOf = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// staticRates 기본 폴백 시세를 돌려주는 시세 제공자
type staticRates struct {
	snap pricing.MetalRateSnapshot
}

func newStaticRates() staticRates {
	return staticRates{snap: pricing.DefaultFallbackRates.Snapshot(testAsOf)}
}

func (s staticRates) Snapshot() pricing.MetalRateSnapshot {
	return s.snap
}

func setupControllerDB(t *testing.T) *gorm.DB {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func testAuthMiddleware() *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(testJWTSecret).WithRevocationChecker(func(context.Context, string) (bool, error) {
		return false, nil
	})
}

func findUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	var user model.User
	require.NoError(t, testDB.Where("email = ?", email).First(&user).Error)
	return &user
}

func tokenFor(t *testing.T, user *model.User) string {
	tokens, err := util.GenerateTokenPair(user.ID, user.Email, string(user.Role), testJWTSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func performRequest(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	code, _ := decodeBody(t, w)["error"].(string)
	return code
}
