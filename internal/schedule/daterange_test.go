package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekRange(t *testing.T) {
	loc := time.UTC

	// 2024-06-12 是周三，所在周为 06-10（周一）到 06-16（周日）
	anchor := time.Date(2024, 6, 12, 15, 30, 0, 0, loc)
	week := WeekRange(anchor, loc)

	require.Equal(t, "2024-06-10", LocalDateKey(week.Start, loc))
	require.Equal(t, "2024-06-16", LocalDateKey(week.End, loc))
	require.Len(t, week.Days, 7)
	require.Equal(t, time.Monday, week.Start.Weekday())

	// 锚点本身是周一时，首日就是锚点当天
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, loc)
	require.Equal(t, "2024-06-10", LocalDateKey(WeekRange(monday, loc).Start, loc))

	// 锚点是周日时，仍归属到同一周而不是下一周
	sunday := time.Date(2024, 6, 16, 23, 0, 0, 0, loc)
	require.Equal(t, "2024-06-10", LocalDateKey(WeekRange(sunday, loc).Start, loc))
}

func TestMonthRange(t *testing.T) {
	loc := time.UTC

	month := MonthRange(time.Date(2024, 2, 15, 0, 0, 0, 0, loc), loc)
	require.Equal(t, "2024-02-01", LocalDateKey(month.Start, loc))
	require.Equal(t, "2024-02-29", LocalDateKey(month.End, loc)) // 闰年
	require.Len(t, month.Days, 29)
}

func TestResolve(t *testing.T) {
	loc := time.UTC
	anchor := time.Date(2024, 6, 12, 0, 0, 0, 0, loc)

	require.Len(t, Resolve(anchor, ViewModeWeek, loc).Days, 7)
	require.Len(t, Resolve(anchor, ViewModeMonth, loc).Days, 30)
}

func TestRangeBetween(t *testing.T) {
	loc := time.UTC

	r := RangeBetween(
		time.Date(2024, 6, 10, 0, 0, 0, 0, loc),
		time.Date(2024, 6, 12, 0, 0, 0, 0, loc),
		loc,
	)
	require.Len(t, r.Days, 3)
	require.Equal(t, "2024-06-10", LocalDateKey(r.Start, loc))
	require.Equal(t, "2024-06-12", LocalDateKey(r.End, loc))

	// end 早于 start 时退化为单天区间
	single := RangeBetween(
		time.Date(2024, 6, 10, 0, 0, 0, 0, loc),
		time.Date(2024, 6, 1, 0, 0, 0, 0, loc),
		loc,
	)
	require.Len(t, single.Days, 1)
	require.Equal(t, "2024-06-10", LocalDateKey(single.Start, loc))
}

func TestMonthGrid(t *testing.T) {
	loc := time.UTC

	// 2024 年 6 月 1 日是周六，前面要补 6 天（周日到周五），共 30 + 6 = 36，补齐到 42
	grid := MonthGrid(time.Date(2024, 6, 15, 0, 0, 0, 0, loc), loc)
	require.Len(t, grid, 42)
	require.Equal(t, time.Sunday, grid[0].Weekday())
	require.Equal(t, "2024-05-26", LocalDateKey(grid[0], loc))
	require.Equal(t, "2024-06-01", LocalDateKey(grid[6], loc))

	// 2024 年 9 月 1 日恰好是周日，前面不需要补
	grid = MonthGrid(time.Date(2024, 9, 1, 0, 0, 0, 0, loc), loc)
	require.Equal(t, "2024-09-01", LocalDateKey(grid[0], loc))
	require.Zero(t, len(grid)%7)
}

func TestQueryBounds(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	start, end := week.QueryBounds()
	require.Equal(t, week.Start, start)
	// 终点是末日次日的零点，左闭右开
	require.Equal(t, "2024-06-17", LocalDateKey(end, loc))
}

func TestContains(t *testing.T) {
	loc := time.UTC
	week := WeekRange(time.Date(2024, 6, 12, 0, 0, 0, 0, loc), loc)

	require.True(t, week.Contains(time.Date(2024, 6, 10, 5, 0, 0, 0, loc), loc))
	require.True(t, week.Contains(time.Date(2024, 6, 16, 23, 59, 0, 0, loc), loc))
	require.False(t, week.Contains(time.Date(2024, 6, 17, 0, 0, 0, 0, loc), loc))
	require.False(t, week.Contains(time.Date(2024, 6, 9, 23, 0, 0, 0, loc), loc))
}
