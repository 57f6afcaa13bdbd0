package handler

import (
	"net/http"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/utils"
)

// orgLocation 返回组织的时区；组织没配或者配了无效值时退回到全局默认时区
func (h *Handler) orgLocation(org *domain.Organization) *time.Location {
	if org.Timezone != "" {
		if loc, err := time.LoadLocation(org.Timezone); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(h.config.Schedule.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	h.successResponse(w, r, "获取组织信息成功", org)
}

func (h *Handler) UpdateOrganizationSettings(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	var req struct {
		Timezone            *string `json:"timezone"`
		DaysOffPerWeek      *int32  `json:"daysOffPerWeek"`
		DaysOffDistribution *string `json:"daysOffDistribution"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Timezone != nil {
		if err := utils.ValidateTimezone(*req.Timezone); err != nil {
			h.badRequest(w, r, err)
			return
		}
		org.Timezone = *req.Timezone
	}
	if req.DaysOffPerWeek != nil {
		org.DaysOffPerWeek = *req.DaysOffPerWeek
	}
	if req.DaysOffDistribution != nil {
		org.DaysOffDistribution = domain.DaysOffDistribution(*req.DaysOffDistribution)
	}

	if err := utils.ValidateDaysOffSettings(org.DaysOffPerWeek, org.DaysOffDistribution); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateOrganizationSettings(org); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新组织设置成功", org)
}
