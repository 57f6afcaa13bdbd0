package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func TestApplyTemplate(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)

	tpl := &domain.ScheduleTemplate{
		OrganizationID: 1,
		Name:           "早班",
		ShiftType:      domain.ShiftTypeOnShift,
		StartTime:      "09:00:00",
		EndTime:        "17:00:00",
		BreakMinutes:   30,
		Color:          "#2ecc71",
	}

	shift, err := ApplyTemplate(tpl, day, 42, loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, loc), shift.StartTime)
	require.Equal(t, time.Date(2024, 5, 1, 17, 0, 0, 0, loc), shift.EndTime)
	require.Equal(t, int64(42), shift.EmployeeID)
	require.Equal(t, int64(1), shift.OrganizationID)
	require.Equal(t, domain.ShiftStatusScheduled, shift.Status)
	require.Equal(t, int32(30), shift.BreakMinutes)
	require.Equal(t, "#2ecc71", shift.Color)
}

func TestApplyTemplateOvernight(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)

	tpl := &domain.ScheduleTemplate{
		Name:      "夜班",
		ShiftType: domain.ShiftTypeOnShift,
		StartTime: "22:00:00",
		EndTime:   "06:00:00",
	}

	shift, err := ApplyTemplate(tpl, day, 1, loc)
	require.NoError(t, err)

	// 结束时刻早于开始时刻视为跨夜班，结束日期落到次日
	require.Equal(t, time.Date(2024, 5, 1, 22, 0, 0, 0, loc), shift.StartTime)
	require.Equal(t, time.Date(2024, 5, 2, 6, 0, 0, 0, loc), shift.EndTime)
	require.Equal(t, 8*time.Hour, shift.EndTime.Sub(shift.StartTime))

	// 归属日仍然是开始时刻所在的那一天
	require.Equal(t, "2024-05-01", LocalDateKey(shift.StartTime, loc))
}

func TestApplyTemplateFullDay(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)

	tpl := &domain.ScheduleTemplate{
		Name:      domain.DefaultTemplateDayOff,
		ShiftType: domain.ShiftTypeDayOff,
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
		IsDefault: true,
	}
	require.True(t, IsFullDayTemplate(tpl))

	shift, err := ApplyTemplate(tpl, day, 1, loc)
	require.NoError(t, err)

	// 全天班次锚定在本地正午，避免时区边界把它挤到前一天
	require.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, loc), shift.StartTime)
	require.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, 999000000, loc), shift.EndTime)
	require.Equal(t, "2024-05-01", LocalDateKey(shift.StartTime, loc))
}

func TestIsFullDayTemplate(t *testing.T) {
	// on_shift 类型即使时间跨全天也不算全天模板
	require.False(t, IsFullDayTemplate(&domain.ScheduleTemplate{
		ShiftType: domain.ShiftTypeOnShift,
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
	}))
	require.False(t, IsFullDayTemplate(&domain.ScheduleTemplate{
		ShiftType: domain.ShiftTypePaidLeave,
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	}))
	require.True(t, IsFullDayTemplate(&domain.ScheduleTemplate{
		ShiftType: domain.ShiftTypeEmergency,
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
	}))
}

func TestApplyTemplateErrors(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)

	tpl := &domain.ScheduleTemplate{
		ShiftType: domain.ShiftTypeOnShift,
		StartTime: "09:00:00",
		EndTime:   "17:00:00",
	}

	_, err := ApplyTemplate(tpl, day, 0, loc)
	require.ErrorIs(t, err, ErrMissingEmployee)

	_, err = ApplyTemplate(&domain.ScheduleTemplate{
		ShiftType: domain.ShiftTypeOnShift,
		StartTime: "九点",
		EndTime:   "17:00:00",
	}, day, 1, loc)
	require.Error(t, err)
}

func TestParseClockFormats(t *testing.T) {
	// HH:MM 和 HH:MM:SS 都接受
	full, err := parseClock("09:30:15")
	require.NoError(t, err)
	require.Equal(t, 9, full.Hour())
	require.Equal(t, 15, full.Second())

	short, err := parseClock("09:30")
	require.NoError(t, err)
	require.Equal(t, 30, short.Minute())

	_, err = parseClock("25:00")
	require.Error(t, err)
}
