package schedule

import (
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// LocalDateKey 返回 t 在 loc 时区下的本地日历日期（YYYY-MM-DD）。
// 所有"这个班次属于哪一天"的判断都必须经过这个函数，
// 不允许在别的地方自行拼接日期字符串
func LocalDateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// ParseInstant 解析时间戳字符串。
// 没带时区标记的裸时间戳一律按 UTC 处理（存量数据中存在这种格式）
func ParseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s+"Z")
}

// Matches 判断班次是否属于 day 所在的本地日历日。
// 这里刻意用本地日期而不是 UTC 日期来比较：
// 本地零点开始的班次在 UTC 下属于前一天，若按 UTC 比较就会被渲染到错误的格子里
func Matches(shift *domain.Shift, day time.Time, loc *time.Location) bool {
	return LocalDateKey(shift.StartTime, loc) == LocalDateKey(day, loc)
}

// ShiftsOn 返回某员工在目标本地日期的所有班次
func ShiftsOn(shifts []*domain.Shift, employeeID int64, day time.Time, loc *time.Location) []*domain.Shift {
	matched := make([]*domain.Shift, 0)
	for _, shift := range shifts {
		if shift.EmployeeID == employeeID && Matches(shift, day, loc) {
			matched = append(matched, shift)
		}
	}
	return matched
}
