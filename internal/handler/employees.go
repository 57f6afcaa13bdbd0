package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	var req struct {
		Username string `json:"username" validate:"required"`
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		JobTitle string `json:"jobTitle"`
		TeamID   *int64 `json:"teamID"`
		Role     string `json:"role" validate:"required,oneof=经理 员工"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 随机生成初始密码，通过邀请邮件发给员工本人
	password := utils.GenerateRandomPassword(12)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employee := &domain.User{
		OrganizationID: org.ID,
		Username:       req.Username,
		PasswordHash:   string(passwordHash),
		FullName:       req.FullName,
		Email:          req.Email,
		JobTitle:       req.JobTitle,
		TeamID:         req.TeamID,
		Role:           domain.Role(req.Role),
	}

	if err := h.repository.CreateUser(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "users_username_key":
				h.errorResponse(w, r, "用户名已存在")
			case "users_email_key":
				h.errorResponse(w, r, "邮箱已被使用")
			case "users_team_id_fkey":
				h.errorResponse(w, r, "团队不存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 邀请邮件（fire-and-forget，发送失败不影响员工创建）
	h.notifyEmployee(&domain.NotificationMessage{
		Event:      domain.NotificationEventCreateUser,
		EmployeeID: employee.ID,
		Email:      employee.Email,
		Data: struct {
			FullName string `json:"fullName"`
			Username string `json:"username"`
			Password string `json:"password"`
		}{
			FullName: employee.FullName,
			Username: employee.Username,
			Password: password,
		},
	})

	h.successResponse(w, r, "创建员工成功", employee)
}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	employees, err := h.repository.QueryEmployees(org.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有员工成功", employees)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.User)

	h.successResponse(w, r, "获取员工信息成功", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.User)

	var req struct {
		Email    *string `json:"email"`
		JobTitle *string `json:"jobTitle"`
		TeamID   *int64  `json:"teamID"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.TeamID != nil {
		employee.TeamID = req.TeamID
	}
	if req.Role != nil {
		employee.Role = domain.Role(*req.Role)
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateUser(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "请重试")
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "users_email_key":
				h.errorResponse(w, r, "邮箱已被使用")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新员工信息成功", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeInfoCtx).(*domain.User)

	if err := h.repository.DeleteUser(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) GetAllTeams(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	teams, err := h.repository.QueryTeams(org.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有团队成功", teams)
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	team := &domain.Team{
		OrganizationID: org.ID,
		Name:           req.Name,
	}

	if err := h.repository.CreateTeam(team); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建团队成功", team)
}

func (h *Handler) GetAllLocations(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	locations, err := h.repository.QueryLocations(org.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有地点成功", locations)
}

func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	org := r.Context().Value(OrganizationCtx).(*domain.Organization)

	var req struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	location := &domain.Location{
		OrganizationID: org.ID,
		Name:           req.Name,
		Address:        req.Address,
	}

	if err := h.repository.CreateLocation(location); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "创建地点成功", location)
}
