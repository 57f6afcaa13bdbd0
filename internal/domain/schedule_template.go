package domain

import (
	"time"
)

// 系统内置的三个默认模板的名称（IsDefault 仅对它们为 true）
const (
	DefaultTemplateEmergency = "Emergency"
	DefaultTemplatePaidLeave = "Paid Leave"
	DefaultTemplateDayOff    = "Day Off"
)

// ScheduleTemplate 是一个"模子"：只带时刻（HH:MM:SS 字符串），不带日期，
// 应用到 (员工, 日期) 之后才产生具体的 Shift
type ScheduleTemplate struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationID"`
	Name           string    `json:"name"`
	ShiftType      ShiftType `json:"shiftType"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	BreakMinutes   int32     `json:"breakMinutes"`
	Color          string    `json:"color"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
