package schedule

import (
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// DuplicateToSlot 把班次"移动"到新的 (员工, 日期) 槽位。
// 移动其实是复制：原记录保持不变，返回一条新的班次记录（历史保留是产品层面的决定）。
// 新班次在目标日期上保留原班次显示用的时分秒，时长严格等于原班次的时长。
// 调用方必须在写入前对目标员工和目标日期重新执行 HasConflict
func DuplicateToSlot(src *domain.Shift, employeeID int64, day time.Time, loc *time.Location) *domain.Shift {
	displayed := src.StartTime.In(loc)
	local := day.In(loc)
	year, month, dayOfMonth := local.Date()

	start := time.Date(year, month, dayOfMonth, displayed.Hour(), displayed.Minute(), displayed.Second(), displayed.Nanosecond(), loc)
	end := start.Add(src.EndTime.Sub(src.StartTime))

	return &domain.Shift{
		OrganizationID: src.OrganizationID,
		EmployeeID:     employeeID,
		LocationID:     src.LocationID,
		StartTime:      start,
		EndTime:        end,
		BreakMinutes:   src.BreakMinutes,
		Status:         src.Status,
		ShiftType:      src.ShiftType,
		Color:          src.Color,
		Notes:          src.Notes,
	}
}
