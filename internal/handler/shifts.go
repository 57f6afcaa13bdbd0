package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/repository"
	"github.com/teamcal-dev/shift-calendar/backend/internal/schedule"
	"github.com/teamcal-dev/shift-calendar/backend/internal/utils"
)

// parseDateParam 按组织时区解析 YYYY-MM-DD 格式的日期参数
func parseDateParam(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}

// resolveRangeFromQuery 从查询参数中解析日期区间：
// 优先使用 anchor + view（周/月视图），否则使用显式的 start + end
func (h *Handler) resolveRangeFromQuery(r *http.Request, loc *time.Location) (schedule.DateRange, error) {
	q := r.URL.Query()

	if anchorParam := q.Get("anchor"); anchorParam != "" {
		anchor, err := parseDateParam(anchorParam, loc)
		if err != nil {
			return schedule.DateRange{}, errors.New("锚点日期格式错误")
		}
		mode := schedule.ViewMode(q.Get("view"))
		if mode != schedule.ViewModeMonth {
			mode = schedule.ViewModeWeek
		}
		return schedule.Resolve(anchor, mode, loc), nil
	}

	start, err := parseDateParam(q.Get("start"), loc)
	if err != nil {
		return schedule.DateRange{}, errors.New("开始日期格式错误")
	}
	end, err := parseDateParam(q.Get("end"), loc)
	if err != nil {
		return schedule.DateRange{}, errors.New("结束日期格式错误")
	}
	return schedule.RangeBetween(start, end, loc), nil
}

// shiftFiltersFromQuery 从查询参数中解析可选的过滤条件
func shiftFiltersFromQuery(r *http.Request) repository.ShiftFilters {
	q := r.URL.Query()
	filters := repository.ShiftFilters{}

	if v := q.Get("employeeID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.EmployeeID = &id
		}
	}
	if v := q.Get("teamID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.TeamID = &id
		}
	}
	if v := q.Get("locationID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.LocationID = &id
		}
	}
	if v := q.Get("status"); v != "" {
		status := domain.ShiftStatus(v)
		filters.Status = &status
	}
	if v := q.Get("shiftType"); v != "" {
		shiftType := domain.ShiftType(v)
		filters.ShiftType = &shiftType
	}

	return filters
}

func (h *Handler) QueryShifts(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	loc := h.orgLocation(org)

	dateRange, err := h.resolveRangeFromQuery(r, loc)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	queryStart, queryEnd := dateRange.QueryBounds()
	shifts, err := h.repository.QueryShifts(org.ID, queryStart, queryEnd, shiftFiltersFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 原样回显 requestID，客户端用它来丢弃乱序到达的旧响应
	h.successResponse(w, r, "查询班次成功", map[string]any{
		"requestID": r.URL.Query().Get("requestID"),
		"shifts":    shifts,
	})
}

// GetCalendar 返回日历视图需要的全部数据：日期格子和按本地日期分组的班次
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	loc := h.orgLocation(org)

	q := r.URL.Query()
	anchor, err := parseDateParam(q.Get("anchor"), loc)
	if err != nil {
		h.errorResponse(w, r, "锚点日期格式错误")
		return
	}

	mode := schedule.ViewMode(q.Get("view"))
	if mode != schedule.ViewModeMonth {
		mode = schedule.ViewModeWeek
	}

	dateRange := schedule.Resolve(anchor, mode, loc)

	// 月视图的格子要补齐到完整的周
	cells := dateRange.Days
	if mode == schedule.ViewModeMonth {
		cells = schedule.MonthGrid(anchor, loc)
	}

	queryStart, queryEnd := dateRange.QueryBounds()
	shifts, err := h.repository.QueryShifts(org.ID, queryStart, queryEnd, shiftFiltersFromQuery(r))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 按本地日期分组，方便前端直接渲染到格子里
	grouped := make(map[string][]*domain.Shift)
	for _, shift := range shifts {
		key := schedule.LocalDateKey(shift.StartTime, loc)
		grouped[key] = append(grouped[key], shift)
	}

	days := make([]string, len(cells))
	for i, cell := range cells {
		days[i] = schedule.LocalDateKey(cell, loc)
	}

	h.successResponse(w, r, "获取日历成功", map[string]any{
		"requestID":  q.Get("requestID"),
		"rangeStart": schedule.LocalDateKey(dateRange.Start, loc),
		"rangeEnd":   schedule.LocalDateKey(dateRange.End, loc),
		"days":       days,
		"shifts":     grouped,
	})
}

// hasConflictOnDay 检查员工在目标本地日期是否已有班次。
// 多查前后各一天，保证跨时区的边界班次不会漏判
func (h *Handler) hasConflictOnDay(orgID int64, employeeID int64, day time.Time, excludeID int64, loc *time.Location) (bool, error) {
	local := day.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	shifts, err := h.repository.QueryShifts(orgID, dayStart.AddDate(0, 0, -1), dayStart.AddDate(0, 0, 2), repository.ShiftFilters{
		EmployeeID: &employeeID,
	})
	if err != nil {
		return false, err
	}

	return schedule.HasConflict(shifts, employeeID, schedule.LocalDateKey(day, loc), excludeID, loc), nil
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	loc := h.orgLocation(org)

	var req struct {
		EmployeeID   int64      `json:"employeeID" validate:"required"`
		TemplateID   *int64     `json:"templateID"`
		Day          string     `json:"day"` // 模板快捷创建时使用，YYYY-MM-DD
		LocationID   *int64     `json:"locationID"`
		StartTime    *time.Time `json:"startTime"`
		EndTime      *time.Time `json:"endTime"`
		BreakMinutes int32      `json:"breakMinutes" validate:"min=0"`
		ShiftType    string     `json:"shiftType"`
		Color        string     `json:"color"`
		Notes        string     `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	var shift *domain.Shift

	if req.TemplateID != nil {
		// 模板快捷创建：把模板展开到 (员工, 日期)
		tpl, err := h.repository.GetScheduleTemplate(*req.TemplateID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "模板不存在")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		day, err := parseDateParam(req.Day, loc)
		if err != nil {
			h.errorResponse(w, r, "日期格式错误")
			return
		}

		shift, err = schedule.ApplyTemplate(tpl, day, req.EmployeeID, loc)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		shift.LocationID = req.LocationID
		shift.Notes = req.Notes
	} else {
		// 手工表单创建
		if req.StartTime == nil || req.EndTime == nil {
			h.errorResponse(w, r, "缺少起止时刻")
			return
		}
		if err := utils.ValidateShiftTime(*req.StartTime, *req.EndTime); err != nil {
			h.badRequest(w, r, err)
			return
		}

		shiftType := domain.ShiftType(req.ShiftType)
		if shiftType == "" {
			shiftType = domain.ShiftTypeOnShift
		}

		shift = &domain.Shift{
			EmployeeID:   req.EmployeeID,
			LocationID:   req.LocationID,
			StartTime:    *req.StartTime,
			EndTime:      *req.EndTime,
			BreakMinutes: req.BreakMinutes,
			Status:       domain.ShiftStatusScheduled,
			ShiftType:    shiftType,
			Color:        req.Color,
			Notes:        req.Notes,
		}
	}

	shift.OrganizationID = org.ID
	shift.CreatedBy = myInfo.ID
	shift.LocalDate = schedule.LocalDateKey(shift.StartTime, loc)

	// 写入前先做冲突预检查：每名员工每个本地日期最多一个班次
	conflict, err := h.hasConflictOnDay(org.ID, shift.EmployeeID, shift.StartTime, 0, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if conflict {
		h.errorResponse(w, r, "该员工当天已有班次")
		return
	}

	if err := h.createShiftRow(w, r, shift); err != nil {
		return
	}

	h.notifyShiftAssigned(shift)

	h.successResponse(w, r, "创建班次成功", shift)
}

// createShiftRow 执行实际的写入，并把数据库层的约束错误翻译成用户可读的信息。
// 预检查和写入之间存在竞态窗口，数据库的唯一约束是最后一道防线
func (h *Handler) createShiftRow(w http.ResponseWriter, r *http.Request, shift *domain.Shift) error {
	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_organization_id_employee_id_local_date_key":
				h.errorResponse(w, r, "该员工当天已有班次")
			case "shifts_employee_id_fkey":
				h.errorResponse(w, r, "员工不存在")
			case "shifts_location_id_fkey":
				h.errorResponse(w, r, "地点不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return err
	}
	return nil
}

func (h *Handler) notifyShiftAssigned(shift *domain.Shift) {
	employee, err := h.repository.GetUserByID(shift.EmployeeID)
	if err != nil {
		return
	}

	h.notifyEmployee(&domain.NotificationMessage{
		Event:      domain.NotificationEventShiftAssigned,
		EmployeeID: employee.ID,
		Email:      employee.Email,
		Data: domain.ShiftAssignedMailData{
			FullName:  employee.FullName,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			ShiftType: string(shift.ShiftType),
		},
	})
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	loc := h.orgLocation(org)

	var req struct {
		LocationID   *int64     `json:"locationID"`
		StartTime    *time.Time `json:"startTime"`
		EndTime      *time.Time `json:"endTime"`
		BreakMinutes *int32     `json:"breakMinutes"`
		Status       *string    `json:"status"`
		ShiftType    *string    `json:"shiftType"`
		Color        *string    `json:"color"`
		Notes        *string    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.LocationID != nil {
		shift.LocationID = req.LocationID
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if req.BreakMinutes != nil {
		shift.BreakMinutes = *req.BreakMinutes
	}
	if req.Status != nil {
		shift.Status = domain.ShiftStatus(*req.Status)
	}
	if req.ShiftType != nil {
		shift.ShiftType = domain.ShiftType(*req.ShiftType)
	}
	if req.Color != nil {
		shift.Color = *req.Color
	}
	if req.Notes != nil {
		shift.Notes = *req.Notes
	}

	if err := utils.ValidateShiftTime(shift.StartTime, shift.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 开始时刻变了就可能落到另一个本地日期，要重新做冲突检查（排除自己）
	shift.LocalDate = schedule.LocalDateKey(shift.StartTime, loc)
	conflict, err := h.hasConflictOnDay(org.ID, shift.EmployeeID, shift.StartTime, shift.ID, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if conflict {
		h.errorResponse(w, r, "该员工当天已有班次")
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "shifts_organization_id_employee_id_local_date_key":
				h.errorResponse(w, r, "该员工当天已有班次")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}

// MoveShift 把班次拖拽到新的 (员工, 日期) 槽位。
// 移动其实是复制：生成一条新记录，原记录保持不变，方便保留历史
func (h *Handler) MoveShift(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	src := r.Context().Value(ShiftCtx).(*domain.Shift)
	loc := h.orgLocation(org)

	var req struct {
		EmployeeID int64  `json:"employeeID" validate:"required"`
		Day        string `json:"day" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	day, err := parseDateParam(req.Day, loc)
	if err != nil {
		h.errorResponse(w, r, "日期格式错误")
		return
	}

	moved := schedule.DuplicateToSlot(src, req.EmployeeID, day, loc)
	moved.CreatedBy = myInfo.ID
	moved.LocalDate = schedule.LocalDateKey(moved.StartTime, loc)

	// 对目标员工和目标日期重新做冲突检查，排除被移动的班次本身
	conflict, err := h.hasConflictOnDay(org.ID, req.EmployeeID, moved.StartTime, src.ID, loc)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if conflict {
		h.errorResponse(w, r, "目标员工当天已有班次")
		return
	}

	if err := h.createShiftRow(w, r, moved); err != nil {
		return
	}

	h.notifyShiftMoved(moved)

	h.successResponse(w, r, "移动班次成功", moved)
}

func (h *Handler) notifyShiftMoved(shift *domain.Shift) {
	employee, err := h.repository.GetUserByID(shift.EmployeeID)
	if err != nil {
		return
	}

	h.notifyEmployee(&domain.NotificationMessage{
		Event:      domain.NotificationEventShiftMoved,
		EmployeeID: employee.ID,
		Email:      employee.Email,
		Data: domain.ShiftAssignedMailData{
			FullName:  employee.FullName,
			StartTime: shift.StartTime,
			EndTime:   shift.EndTime,
			ShiftType: string(shift.ShiftType),
		},
	})
}

// ClearSchedule 批量清空一段日期区间内的所有班次
func (h *Handler) ClearSchedule(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)
	loc := h.orgLocation(org)

	dateRange, err := h.resolveRangeFromQuery(r, loc)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	queryStart, queryEnd := dateRange.QueryBounds()
	deleted, err := h.repository.DeleteShiftsInRange(org.ID, queryStart, queryEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "清空排班成功", map[string]any{
		"deleted": deleted,
	})
}
