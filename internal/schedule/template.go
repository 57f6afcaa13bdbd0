package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// ErrMissingEmployee 表示模板没有指定员工，无法直接展开成班次。
// 调用方应该退回到手工表单（预填模板的时间），而不是自动创建
var ErrMissingEmployee = errors.New("缺少员工，无法直接应用模板")

// parseClock 解析 HH:MM 或 HH:MM:SS 格式的时刻字符串
func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("时刻格式错误: %s", s)
}

// IsFullDayTemplate 判断模板是否为全天模板：
// 非 on_shift 类型且时间范围恰好是 00:00:00 ~ 23:59:59
func IsFullDayTemplate(tpl *domain.ScheduleTemplate) bool {
	if tpl.ShiftType == domain.ShiftTypeOnShift {
		return false
	}

	start, err := parseClock(tpl.StartTime)
	if err != nil {
		return false
	}
	end, err := parseClock(tpl.EndTime)
	if err != nil {
		return false
	}

	return start.Hour() == 0 && start.Minute() == 0 && start.Second() == 0 &&
		end.Hour() == 23 && end.Minute() == 59 && end.Second() == 59
}

// ApplyTemplate 把模板应用到 (员工, 日期)，产生一条可以入库的班次。
// 规则：
//   - 全天模板：开始时刻锚定在当天本地正午，结束时刻为 23:59:59.999。
//     用正午而不是零点做锚点，可以避免夏令时和时区边界把全天标记挤到前一天
//   - 普通模板：开始结束都取当天对应的时刻；
//     若结束时刻早于开始时刻，视为跨夜班，结束日期加一天
func ApplyTemplate(tpl *domain.ScheduleTemplate, day time.Time, employeeID int64, loc *time.Location) (*domain.Shift, error) {
	if employeeID == 0 {
		return nil, ErrMissingEmployee
	}

	startClock, err := parseClock(tpl.StartTime)
	if err != nil {
		return nil, err
	}
	endClock, err := parseClock(tpl.EndTime)
	if err != nil {
		return nil, err
	}

	local := day.In(loc)
	year, month, dayOfMonth := local.Date()

	var start, end time.Time
	if IsFullDayTemplate(tpl) {
		start = time.Date(year, month, dayOfMonth, 12, 0, 0, 0, loc)
		end = time.Date(year, month, dayOfMonth, 23, 59, 59, 999*int(time.Millisecond), loc)
	} else {
		start = time.Date(year, month, dayOfMonth, startClock.Hour(), startClock.Minute(), startClock.Second(), 0, loc)
		end = time.Date(year, month, dayOfMonth, endClock.Hour(), endClock.Minute(), endClock.Second(), 0, loc)
		if end.Before(start) {
			// 跨夜班
			end = end.AddDate(0, 0, 1)
		}
	}

	return &domain.Shift{
		OrganizationID: tpl.OrganizationID,
		EmployeeID:     employeeID,
		StartTime:      start,
		EndTime:        end,
		BreakMinutes:   tpl.BreakMinutes,
		Status:         domain.ShiftStatusScheduled,
		ShiftType:      tpl.ShiftType,
		Color:          tpl.Color,
	}, nil
}
