package schedule

import (
	"time"
)

type ViewMode string

const (
	ViewModeWeek  ViewMode = "week"
	ViewModeMonth ViewMode = "month"
)

// DateRange 表示一段闭区间的本地日历日期
type DateRange struct {
	Start time.Time   // 区间首日的本地零点
	End   time.Time   // 区间末日的本地零点
	Days  []time.Time // 区间内所有日期的本地零点，按顺序排列
}

// Resolve 根据视图模式和锚点日期计算要渲染的日期区间。
// 对任何合法日期都能成功，没有错误分支
func Resolve(anchor time.Time, mode ViewMode, loc *time.Location) DateRange {
	if mode == ViewModeMonth {
		return MonthRange(anchor, loc)
	}
	return WeekRange(anchor, loc)
}

// WeekRange 计算锚点所在的周（周一为一周的第一天）
func WeekRange(anchor time.Time, loc *time.Location) DateRange {
	local := anchor.In(loc)
	// time.Weekday 以周日为 0，转换成以周一为 0
	dayOfWeek := (int(local.Weekday()) + 6) % 7
	start := time.Date(local.Year(), local.Month(), local.Day()-dayOfWeek, 0, 0, 0, 0, loc)

	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}

	return DateRange{
		Start: start,
		End:   days[6],
		Days:  days,
	}
}

// MonthRange 计算锚点所在的自然月（1 号到最后一天）
func MonthRange(anchor time.Time, loc *time.Location) DateRange {
	local := anchor.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, -1)

	days := make([]time.Time, 0, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return DateRange{
		Start: start,
		End:   end,
		Days:  days,
	}
}

// RangeBetween 构造 [start, end] 两个本地日期之间的闭区间。
// end 早于 start 时返回只含 start 一天的区间
func RangeBetween(start time.Time, end time.Time, loc *time.Location) DateRange {
	startLocal := start.In(loc)
	first := time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), 0, 0, 0, 0, loc)

	endLocal := end.In(loc)
	last := time.Date(endLocal.Year(), endLocal.Month(), endLocal.Day(), 0, 0, 0, 0, loc)
	if last.Before(first) {
		last = first
	}

	days := make([]time.Time, 0)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return DateRange{
		Start: first,
		End:   last,
		Days:  days,
	}
}

// MonthGrid 返回月视图渲染用的日期格子：
// 在自然月前后补齐到完整的周（周日为一周的第一天），长度一定是 7 的倍数
func MonthGrid(anchor time.Time, loc *time.Location) []time.Time {
	month := MonthRange(anchor, loc)

	// 月初往前补到周日
	padBefore := int(month.Start.Weekday())
	first := month.Start.AddDate(0, 0, -padBefore)

	total := padBefore + len(month.Days)
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	grid := make([]time.Time, total)
	for i := range grid {
		grid[i] = first.AddDate(0, 0, i)
	}
	return grid
}

// QueryBounds 返回查询数据库用的起止时刻：
// 起点为首日的本地零点，终点为末日次日的本地零点（左闭右开）
func (r DateRange) QueryBounds() (time.Time, time.Time) {
	return r.Start, r.End.AddDate(0, 0, 1)
}

// Contains 判断 day 是否落在区间内（按本地日期比较）
func (r DateRange) Contains(day time.Time, loc *time.Location) bool {
	key := LocalDateKey(day, loc)
	return key >= LocalDateKey(r.Start, loc) && key <= LocalDateKey(r.End, loc)
}
