package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DailyTrend 返回全量历史的每日情绪趋势矩阵
func (h *HTTPHandler) DailyTrend(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	trend, err := h.journalService.DailyTrend(ctx, requestUser.ID)
	if err != nil {
		h.renderServiceError(c, err, "failed to load trend")
		return
	}

	c.JSON(http.StatusOK, trend)
}

// RecentTrend 仅统计最近一个窗口期（默认 7 天）
func (h *HTTPHandler) RecentTrend(c *gin.Context) {
	requestUser := CurrentUser(c)
	if requestUser == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	trend, err := h.journalService.RecentTrend(ctx, requestUser.ID)
	if err != nil {
		h.renderServiceError(c, err, "failed to load recent trend")
		return
	}

	c.JSON(http.StatusOK, trend)
}
