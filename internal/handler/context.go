package handler

type ContextKey string

var (
	RoleCtxKey          ContextKey = "role"
	SubCtxKey           ContextKey = "sub"
	MyInfoCtx           ContextKey = "myInfo"
	OrganizationCtx     ContextKey = "organization"
	EmployeeInfoCtx     ContextKey = "employeeInfo"
	ScheduleTemplateCtx ContextKey = "scheduleTemplate"
	ShiftCtx            ContextKey = "shift"
)
