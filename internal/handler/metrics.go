package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// DashboardMetrics 是仪表盘上的四个统计卡片
type DashboardMetrics struct {
	ShiftsToday   int64 `json:"shiftsToday"`
	ActiveNow     int64 `json:"activeNow"`
	PendingShifts int64 `json:"pendingShifts"`
	NewHires      int64 `json:"newHires"`
}

// GetDashboardMetrics 聚合仪表盘统计。
// 每个子查询带独立超时，超时或出错时该项退化为 0，不拖垮整个接口；
// 聚合结果在 Redis 里缓存一小段时间，仪表盘轮询不会反复打数据库
func (h *Handler) GetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	loc := h.orgLocation(org)

	cacheKey := fmt.Sprintf("dashboard_metrics_%d", org.ID)

	cached, err := h.redisClient.Get(r.Context(), cacheKey).Result()
	if err == nil {
		var metrics DashboardMetrics
		if err := json.Unmarshal([]byte(cached), &metrics); err == nil {
			h.successResponse(w, r, "获取仪表盘统计成功", metrics)
			return
		}
	} else if err != redis.Nil {
		slog.Warn("读取仪表盘统计缓存失败", "error", err)
	}

	now := time.Now().In(loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	todayEnd := todayStart.AddDate(0, 0, 1)

	metrics := DashboardMetrics{}

	if count, err := h.repository.CountShiftsBetween(org.ID, todayStart, todayEnd); err != nil {
		slog.Warn("统计今日班次失败", "error", err)
	} else {
		metrics.ShiftsToday = count
	}

	if count, err := h.repository.CountActiveNow(org.ID, now); err != nil {
		slog.Warn("统计当前在岗人数失败", "error", err)
	} else {
		metrics.ActiveNow = count
	}

	if count, err := h.repository.CountPendingShifts(org.ID, now); err != nil {
		slog.Warn("统计待确认班次失败", "error", err)
	} else {
		metrics.PendingShifts = count
	}

	if count, err := h.repository.CountNewHires(org.ID, now.AddDate(0, 0, -30)); err != nil {
		slog.Warn("统计新入职人数失败", "error", err)
	} else {
		metrics.NewHires = count
	}

	if data, err := json.Marshal(metrics); err == nil {
		expiration := time.Duration(h.config.Metrics.CacheExpiration) * time.Second
		if err := h.redisClient.Set(r.Context(), cacheKey, data, expiration).Err(); err != nil {
			slog.Warn("写入仪表盘统计缓存失败", "error", err)
		}
	}

	h.successResponse(w, r, "获取仪表盘统计成功", metrics)
}
