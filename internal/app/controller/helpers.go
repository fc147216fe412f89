package controller

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/jrbgold/jrb-backend/internal/middleware"
)

// requireUserID 인증된 사용자 ID를 꺼내고, 없으면 401로 응답한다
func requireUserID(c *gin.Context) (uint, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.GetLoggerFromContext(c).Warn("Request without authenticated user", map[string]interface{}{
			"path": c.FullPath(),
		})
		apperrors.Unauthorized(c, "User not authenticated")
		return 0, false
	}
	return userID, true
}
