package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

type ShiftType string

const (
	ShiftTypeOnShift   ShiftType = "on_shift"
	ShiftTypePaidLeave ShiftType = "paid_leave"
	ShiftTypeEmergency ShiftType = "emergency"
	ShiftTypeDayOff    ShiftType = "day_off"
)

// Shift 的 StartTime 和 EndTime 都是绝对时刻（UTC），
// "属于哪一天"必须用观察者时区下的本地日期来判断，不能用 UTC 日期
type Shift struct {
	ID             int64       `json:"id"`
	OrganizationID int64       `json:"organizationID"`
	EmployeeID     int64       `json:"employeeID"`
	LocationID     *int64      `json:"locationID"`
	StartTime      time.Time   `json:"startTime"`
	EndTime        time.Time   `json:"endTime"`
	BreakMinutes   int32       `json:"breakMinutes"`
	Status         ShiftStatus `json:"status"`
	ShiftType      ShiftType   `json:"shiftType"`
	Color          string      `json:"color"`
	Notes          string      `json:"notes"`
	CreatedBy      int64       `json:"createdBy"`
	// LocalDate 是 StartTime 在组织时区下的本地日历日期（YYYY-MM-DD），
	// 写入时计算好落库，数据库用它上的唯一约束兜底"每人每天一个班次"
	LocalDate      string      `json:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Version        int32       `json:"-"`
}
