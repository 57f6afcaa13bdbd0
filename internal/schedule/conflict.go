package schedule

import (
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// HasConflict 检查员工在目标本地日期是否已有班次。
// 不变量：同一 (员工, 组织) 在同一个本地日历日内最多只能有一个班次，
// 任何创建或移动操作之前都必须先通过这个检查。
// excludeID 用于编辑或移动的场景，排除正在被操作的那条班次本身（传 0 表示不排除）。
//
// 注意这只是写入前的预检查，先查后写并不是原子的：
// 两个经理同时操作时仍存在竞态窗口，真正的唯一性由数据库的唯一约束兜底
func HasConflict(shifts []*domain.Shift, employeeID int64, dateKey string, excludeID int64, loc *time.Location) bool {
	for _, shift := range shifts {
		if shift.EmployeeID != employeeID {
			continue
		}
		if excludeID != 0 && shift.ID == excludeID {
			continue
		}
		if LocalDateKey(shift.StartTime, loc) == dateKey {
			return true
		}
	}
	return false
}
