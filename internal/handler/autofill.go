package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/repository"
	"github.com/teamcal-dev/shift-calendar/backend/internal/schedule"
)

// AutoFillSchedule 为一段日期区间自动排班。
// 逐条顺序写入，单条失败只记录不中断，最后把成功数和失败明细一起返回
func (h *Handler) AutoFillSchedule(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	loc := h.orgLocation(org)

	var req struct {
		Start      string `json:"start" validate:"required"`
		End        string `json:"end" validate:"required"`
		LocationID *int64 `json:"locationID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, err := parseDateParam(req.Start, loc)
	if err != nil {
		h.errorResponse(w, r, "开始日期格式错误")
		return
	}
	end, err := parseDateParam(req.End, loc)
	if err != nil {
		h.errorResponse(w, r, "结束日期格式错误")
		return
	}

	dateRange := schedule.RangeBetween(start, end, loc)

	// 只给在职员工排班
	employees, err := h.repository.QueryEmployees(org.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	roster := make([]*domain.User, 0, len(employees))
	for _, employee := range employees {
		if employee.IsActive {
			roster = append(roster, employee)
		}
	}
	if len(roster) == 0 {
		h.errorResponse(w, r, "没有在职员工可供排班")
		return
	}

	// 模板分两类：用户自建的 on_shift 模板用来轮换，内置 Day Off 模板用来生成休息日
	templates, err := h.repository.QueryTemplates(org.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	onShiftTemplates := make([]*domain.ScheduleTemplate, 0, len(templates))
	var dayOffTemplate *domain.ScheduleTemplate
	for _, tpl := range templates {
		switch {
		case tpl.IsDefault && tpl.Name == domain.DefaultTemplateDayOff:
			dayOffTemplate = tpl
		case !tpl.IsDefault && tpl.ShiftType == domain.ShiftTypeOnShift:
			onShiftTemplates = append(onShiftTemplates, tpl)
		}
	}

	queryStart, queryEnd := dateRange.QueryBounds()
	existing, err := h.repository.QueryShifts(org.ID, queryStart, queryEnd, repository.ShiftFilters{})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	planner := schedule.NewPlanner(&schedule.AutoFillParams{
		Range:          dateRange,
		Roster:         roster,
		DaysOffPerWeek: int(org.DaysOffPerWeek),
		Distribution:   org.DaysOffDistribution,
		Templates:      onShiftTemplates,
		DayOffTemplate: dayOffTemplate,
		Existing:       existing,
		Location:       loc,
	})

	type autoFillError struct {
		EmployeeID int64  `json:"employeeID"`
		Date       string `json:"date"`
		Message    string `json:"message"`
	}

	created := 0
	autoFillErrors := make([]autoFillError, 0)

	for _, shift := range planner.Plan() {
		shift.CreatedBy = myInfo.ID
		shift.LocationID = req.LocationID
		shift.LocalDate = schedule.LocalDateKey(shift.StartTime, loc)

		if err := h.repository.CreateShift(shift); err != nil {
			var pgErr *pgconn.PgError
			msg := "写入失败"
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_organization_id_employee_id_local_date_key" {
				msg = "该员工当天已有班次"
			}
			autoFillErrors = append(autoFillErrors, autoFillError{
				EmployeeID: shift.EmployeeID,
				Date:       shift.LocalDate,
				Message:    msg,
			})
			continue
		}
		created++
	}

	// 排班完成后通知名单里的每个人（fire-and-forget）
	if created > 0 {
		rangeStart := schedule.LocalDateKey(dateRange.Start, loc)
		rangeEnd := schedule.LocalDateKey(dateRange.End, loc)
		for _, employee := range roster {
			h.notifyEmployee(&domain.NotificationMessage{
				Event:      domain.NotificationEventScheduleGenerated,
				EmployeeID: employee.ID,
				Email:      employee.Email,
				Data: domain.ScheduleGeneratedMailData{
					FullName:   employee.FullName,
					RangeStart: rangeStart,
					RangeEnd:   rangeEnd,
					Created:    created,
				},
			})
		}
	}

	h.successResponse(w, r, "自动排班完成", map[string]any{
		"created": created,
		"errors":  autoFillErrors,
	})
}
