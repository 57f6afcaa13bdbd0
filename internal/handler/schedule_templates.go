package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/utils"
)

func (h *Handler) CreateScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	var req struct {
		Name         string `json:"name" validate:"required"`
		ShiftType    string `json:"shiftType" validate:"required,oneof=on_shift paid_leave emergency day_off"`
		StartTime    string `json:"startTime" validate:"required"`
		EndTime      string `json:"endTime" validate:"required"`
		BreakMinutes int32  `json:"breakMinutes" validate:"min=0"`
		Color        string `json:"color"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	tpl := &domain.ScheduleTemplate{
		OrganizationID: org.ID,
		Name:           req.Name,
		ShiftType:      domain.ShiftType(req.ShiftType),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		BreakMinutes:   req.BreakMinutes,
		Color:          req.Color,
	}

	// 检查起止时刻的格式是否合法
	if err := utils.ValidateTemplateTime(tpl); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateScheduleTemplate(tpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_templates_organization_id_name_key":
				h.errorResponse(w, r, "模板名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建模板成功", tpl)
}

func (h *Handler) GetAllScheduleTemplates(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	templates, err := h.repository.QueryTemplates(org.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有模板成功", templates)
}

func (h *Handler) GetScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	h.successResponse(w, r, "获取模板成功", tpl)
}

func (h *Handler) UpdateScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	// 内置的三个模板（Emergency / Paid Leave / Day Off）是系统语义的一部分，禁止修改
	if tpl.IsDefault {
		h.errorResponse(w, r, "禁止修改内置模板")
		return
	}

	var req struct {
		Name         *string `json:"name"`
		ShiftType    *string `json:"shiftType"`
		StartTime    *string `json:"startTime"`
		EndTime      *string `json:"endTime"`
		BreakMinutes *int32  `json:"breakMinutes"`
		Color        *string `json:"color"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		tpl.Name = *req.Name
	}
	if req.ShiftType != nil {
		tpl.ShiftType = domain.ShiftType(*req.ShiftType)
	}
	if req.StartTime != nil {
		tpl.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		tpl.EndTime = *req.EndTime
	}
	if req.BreakMinutes != nil {
		tpl.BreakMinutes = *req.BreakMinutes
	}
	if req.Color != nil {
		tpl.Color = *req.Color
	}

	if err := utils.ValidateTemplateTime(tpl); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateScheduleTemplate(tpl); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "schedule_templates_organization_id_name_key":
				h.errorResponse(w, r, "模板名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新模板成功", tpl)
}

func (h *Handler) DeleteScheduleTemplate(w http.ResponseWriter, r *http.Request) {
	tpl := r.Context().Value(ScheduleTemplateCtx).(*domain.ScheduleTemplate)

	if tpl.IsDefault {
		h.errorResponse(w, r, "禁止删除内置模板")
		return
	}

	if err := h.repository.DeleteScheduleTemplate(tpl.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除模板成功", nil)
}
