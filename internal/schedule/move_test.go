package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func TestDuplicateToSlot(t *testing.T) {
	loc := time.UTC
	locationID := int64(7)

	src := &domain.Shift{
		ID:             1,
		OrganizationID: 1,
		EmployeeID:     1,
		LocationID:     &locationID,
		StartTime:      time.Date(2024, 6, 1, 9, 0, 0, 0, loc),
		EndTime:        time.Date(2024, 6, 1, 13, 0, 0, 0, loc),
		BreakMinutes:   30,
		Status:         domain.ShiftStatusConfirmed,
		ShiftType:      domain.ShiftTypeOnShift,
		Color:          "#3788d8",
		Notes:          "带新人",
	}

	moved := DuplicateToSlot(src, 2, time.Date(2024, 6, 5, 0, 0, 0, 0, loc), loc)

	// 新班次落在目标日期，保留原来的起始时分秒和精确时长
	require.Equal(t, time.Date(2024, 6, 5, 9, 0, 0, 0, loc), moved.StartTime)
	require.Equal(t, 4*time.Hour, moved.EndTime.Sub(moved.StartTime))
	require.Equal(t, int64(2), moved.EmployeeID)

	// 其余字段原样复制，且不带 ID（这是一条新记录）
	require.Zero(t, moved.ID)
	require.Equal(t, src.LocationID, moved.LocationID)
	require.Equal(t, src.BreakMinutes, moved.BreakMinutes)
	require.Equal(t, src.Status, moved.Status)
	require.Equal(t, src.ShiftType, moved.ShiftType)
	require.Equal(t, src.Color, moved.Color)
	require.Equal(t, src.Notes, moved.Notes)

	// 原记录不动
	require.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, loc), src.StartTime)
	require.Equal(t, int64(1), src.EmployeeID)
}

func TestDuplicateToSlotPreservesWallClock(t *testing.T) {
	shanghai := time.FixedZone("UTC+8", 8*60*60)

	// UTC 存储的班次在东八区显示为 17:00 开始
	src := &domain.Shift{
		EmployeeID: 1,
		StartTime:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 6, 1, 17, 0, 0, 0, time.UTC),
	}
	require.Equal(t, 17, src.StartTime.In(shanghai).Hour())

	moved := DuplicateToSlot(src, 1, time.Date(2024, 6, 5, 0, 0, 0, 0, shanghai), shanghai)

	// 移动后显示的墙钟时刻不变，时长不变
	require.Equal(t, 17, moved.StartTime.In(shanghai).Hour())
	require.Equal(t, 8*time.Hour, moved.EndTime.Sub(moved.StartTime))
	require.Equal(t, "2024-06-05", LocalDateKey(moved.StartTime, shanghai))
}

func TestDuplicateToSlotOvernight(t *testing.T) {
	loc := time.UTC

	// 跨夜班移动后仍然跨夜，时长不变
	src := &domain.Shift{
		EmployeeID: 1,
		StartTime:  time.Date(2024, 6, 1, 22, 0, 0, 0, loc),
		EndTime:    time.Date(2024, 6, 2, 6, 0, 0, 0, loc),
	}

	moved := DuplicateToSlot(src, 1, time.Date(2024, 6, 10, 0, 0, 0, 0, loc), loc)
	require.Equal(t, time.Date(2024, 6, 10, 22, 0, 0, 0, loc), moved.StartTime)
	require.Equal(t, time.Date(2024, 6, 11, 6, 0, 0, 0, loc), moved.EndTime)
}
