package domain

import "time"

// Notification 是落库的站内通知行
type Notification struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeID"`
	Event      string    `json:"event"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NotificationMessage 是投递到消息队列中的事件，
// 由 notifier 消费后写入通知行并发送邮件。
// 发送失败只记录日志，绝不回滚触发它的班次写入
type NotificationMessage struct {
	Event      string `json:"event"`
	EmployeeID int64  `json:"employeeID"`
	Email      string `json:"email"`
	Data       any    `json:"data"`
}

const (
	NotificationEventCreateUser        = "create_user"
	NotificationEventResetPassword     = "reset_password"
	NotificationEventShiftAssigned     = "shift_assigned"
	NotificationEventShiftMoved        = "shift_moved"
	NotificationEventShiftCancelled    = "shift_cancelled"
	NotificationEventScheduleGenerated = "schedule_generated"
)

type ShiftAssignedMailData struct {
	FullName  string    `json:"fullName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	ShiftType string    `json:"shiftType"`
}

type ScheduleGeneratedMailData struct {
	FullName   string `json:"fullName"`
	RangeStart string `json:"rangeStart"`
	RangeEnd   string `json:"rangeEnd"`
	Created    int    `json:"created"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}
