package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

var dayOffTemplate = &domain.ScheduleTemplate{
	Name:      domain.DefaultTemplateDayOff,
	ShiftType: domain.ShiftTypeDayOff,
	StartTime: "00:00:00",
	EndTime:   "23:59:59",
	IsDefault: true,
}

func testRoster(n int) []*domain.User {
	roster := make([]*domain.User, n)
	for i := range roster {
		roster[i] = &domain.User{ID: int64(i + 1), OrganizationID: 1, IsActive: true}
	}
	return roster
}

// countByType 统计某员工各类型班次的数量
func countByType(shifts []*domain.Shift, employeeID int64) map[domain.ShiftType]int {
	counts := make(map[domain.ShiftType]int)
	for _, shift := range shifts {
		if shift.EmployeeID == employeeID {
			counts[shift.ShiftType]++
		}
	}
	return counts
}

func TestPlanFillsEveryDay(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	planner := NewPlanner(&AutoFillParams{
		Range:          week,
		Roster:         testRoster(3),
		DaysOffPerWeek: 2,
		Distribution:   domain.DaysOffDistributionRandom,
		DayOffTemplate: dayOffTemplate,
		Location:       loc,
	})
	planned := planner.Plan()

	// 每个员工每天恰好一个班次
	require.Len(t, planned, 3*7)
	for _, employee := range []int64{1, 2, 3} {
		counts := countByType(planned, employee)
		require.Equal(t, 2, counts[domain.ShiftTypeDayOff])
		require.Equal(t, 5, counts[domain.ShiftTypeOnShift])
	}

	// 没有任何 (员工, 日期) 出现两次
	seen := make(map[string]bool)
	for _, shift := range planned {
		slot := fmt.Sprintf("%d@%s", shift.EmployeeID, LocalDateKey(shift.StartTime, loc))
		require.False(t, seen[slot])
		seen[slot] = true
	}
}

func TestPlanStaggersDaysOff(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	planner := NewPlanner(&AutoFillParams{
		Range:          week,
		Roster:         testRoster(2),
		DaysOffPerWeek: 2,
		Distribution:   domain.DaysOffDistributionRandom,
		DayOffTemplate: dayOffTemplate,
		Location:       loc,
	})
	planned := planner.Plan()

	// 人手足够时两个员工的休息日完全错开
	daysOff := make(map[string][]int64)
	for _, shift := range planned {
		if shift.ShiftType == domain.ShiftTypeDayOff {
			key := LocalDateKey(shift.StartTime, loc)
			daysOff[key] = append(daysOff[key], shift.EmployeeID)
		}
	}
	require.Len(t, daysOff, 4)
	for key, employees := range daysOff {
		require.Len(t, employees, 1, "休息日 %s 不应该有多个员工", key)
	}
}

func TestPlanWeekendsDistribution(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	planner := NewPlanner(&AutoFillParams{
		Range:          week,
		Roster:         testRoster(2),
		DaysOffPerWeek: 2,
		Distribution:   domain.DaysOffDistributionWeekends,
		DayOffTemplate: dayOffTemplate,
		Location:       loc,
	})
	planned := planner.Plan()

	// 周末模式：所有人都休周六周日
	for _, shift := range planned {
		weekday := shift.StartTime.In(loc).Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			require.Equal(t, domain.ShiftTypeDayOff, shift.ShiftType)
		} else {
			require.Equal(t, domain.ShiftTypeOnShift, shift.ShiftType)
		}
	}
}

func TestPlanRotatesTemplates(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, loc) // 周一，避开周末休息日

	morning := &domain.ScheduleTemplate{Name: "早班", ShiftType: domain.ShiftTypeOnShift, StartTime: "08:00:00", EndTime: "16:00:00"}
	night := &domain.ScheduleTemplate{Name: "夜班", ShiftType: domain.ShiftTypeOnShift, StartTime: "22:00:00", EndTime: "06:00:00"}

	planner := NewPlanner(&AutoFillParams{
		Range:          RangeBetween(day, day, loc),
		Roster:         testRoster(3),
		Distribution:   domain.DaysOffDistributionWeekends,
		Templates:      []*domain.ScheduleTemplate{morning, night},
		DayOffTemplate: dayOffTemplate,
		Location:       loc,
	})
	planned := planner.Plan()

	// 按员工序号轮换模板：0 号早班、1 号夜班、2 号又回到早班
	require.Len(t, planned, 3)
	require.Equal(t, 8, planned[0].StartTime.In(loc).Hour())
	require.Equal(t, 22, planned[1].StartTime.In(loc).Hour())
	require.Equal(t, 8, planned[2].StartTime.In(loc).Hour())
}

func TestPlanFallbackTemplate(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)

	// 没有任何自建模板时使用内置的 09:00 - 17:00 兜底模板
	planner := NewPlanner(&AutoFillParams{
		Range:        RangeBetween(day, day, loc),
		Roster:       testRoster(1),
		Distribution: domain.DaysOffDistributionWeekends,
		Location:     loc,
	})
	planned := planner.Plan()

	require.Len(t, planned, 1)
	require.Equal(t, 9, planned[0].StartTime.In(loc).Hour())
	require.Equal(t, 17, planned[0].EndTime.In(loc).Hour())
	require.Equal(t, domain.ShiftTypeOnShift, planned[0].ShiftType)
}

func TestPlanSkipsExistingShifts(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	// 1 号员工在周三已经有班次
	existing := []*domain.Shift{
		{ID: 100, EmployeeID: 1, StartTime: time.Date(2024, 6, 12, 9, 0, 0, 0, loc)},
	}

	planner := NewPlanner(&AutoFillParams{
		Range:          week,
		Roster:         testRoster(1),
		DaysOffPerWeek: 2,
		Distribution:   domain.DaysOffDistributionRandom,
		DayOffTemplate: dayOffTemplate,
		Existing:       existing,
		Location:       loc,
	})
	planned := planner.Plan()

	// 已占用的那天不会再生成
	require.Len(t, planned, 6)
	for _, shift := range planned {
		require.NotEqual(t, "2024-06-12", LocalDateKey(shift.StartTime, loc))
	}
}

func TestPlanIsIdempotentUnderSkip(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	params := &AutoFillParams{
		Range:          week,
		Roster:         testRoster(2),
		DaysOffPerWeek: 2,
		Distribution:   domain.DaysOffDistributionRandom,
		DayOffTemplate: dayOffTemplate,
		Location:       loc,
	}

	first := NewPlanner(params).Plan()
	require.NotEmpty(t, first)

	// 把第一轮的结果当作已存在的班次再跑一轮，不应产生任何新班次
	params.Existing = first
	second := NewPlanner(params).Plan()
	require.Empty(t, second)
}

func TestPlanWithoutDayOffTemplate(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	// 没有 Day Off 模板时休息日直接留空，不生成任何占位班次
	planner := NewPlanner(&AutoFillParams{
		Range:          week,
		Roster:         testRoster(1),
		DaysOffPerWeek: 2,
		Distribution:   domain.DaysOffDistributionWeekends,
		Location:       loc,
	})
	planned := planner.Plan()

	require.Len(t, planned, 5)
	for _, shift := range planned {
		require.Equal(t, domain.ShiftTypeOnShift, shift.ShiftType)
	}
}
