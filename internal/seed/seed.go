package seed

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/teamcal-dev/shift-calendar/backend/internal/config"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
	"github.com/teamcal-dev/shift-calendar/backend/internal/repository"
	"github.com/teamcal-dev/shift-calendar/backend/internal/utils"
)

// EnsureOrganization 确保默认组织存在，已存在则直接返回现有的那一个
func EnsureOrganization(r *repository.Repository, cfg *config.Config) (*domain.Organization, error) {
	org, err := r.GetOrganizationByName(cfg.Organization.Name)
	if err == nil {
		return org, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	org = &domain.Organization{
		Name:                cfg.Organization.Name,
		Timezone:            cfg.Organization.Timezone,
		DaysOffPerWeek:      2,
		DaysOffDistribution: domain.DaysOffDistributionRandom,
	}
	if err := r.CreateOrganization(org); err != nil {
		return nil, err
	}
	return org, nil
}

// EnsureDefaultTemplates 确保三个内置模板存在。
// 内置模板都是全天模板（00:00:00 - 23:59:59），应用后会生成锚定在正午的全天班次
func EnsureDefaultTemplates(r *repository.Repository, orgID int64) error {
	defaults := []*domain.ScheduleTemplate{
		{
			OrganizationID: orgID,
			Name:           domain.DefaultTemplateEmergency,
			ShiftType:      domain.ShiftTypeEmergency,
			StartTime:      "00:00:00",
			EndTime:        "23:59:59",
			Color:          "#e74c3c",
			IsDefault:      true,
		},
		{
			OrganizationID: orgID,
			Name:           domain.DefaultTemplatePaidLeave,
			ShiftType:      domain.ShiftTypePaidLeave,
			StartTime:      "00:00:00",
			EndTime:        "23:59:59",
			Color:          "#9b59b6",
			IsDefault:      true,
		},
		{
			OrganizationID: orgID,
			Name:           domain.DefaultTemplateDayOff,
			ShiftType:      domain.ShiftTypeDayOff,
			StartTime:      "00:00:00",
			EndTime:        "23:59:59",
			Color:          "#95a5a6",
			IsDefault:      true,
		},
	}

	for _, tpl := range defaults {
		if err := r.CreateScheduleTemplate(tpl); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "schedule_templates_organization_id_name_key" {
				// 已经存在，不处理
				continue
			}
			return err
		}
	}
	return nil
}

// SeedEmployees 插入 n 个随机员工，返回成功插入的数量
func SeedEmployees(r *repository.Repository, cfg *config.Config, orgID int64, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		employee, err := utils.GenerateRandomEmployee(cfg.Seed.User.Password, cfg.Email.UserDomain, orgID)
		if err != nil {
			slog.Error("无法生成随机员工", "error", err)
			continue
		}

		if err := r.CreateUser(employee); err != nil {
			slog.Error("无法插入员工", "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// SeedTeams 插入几个常见的团队
func SeedTeams(r *repository.Repository, orgID int64) int {
	names := []string{"前厅组", "后勤组", "夜班组"}

	cnt := 0
	for _, name := range names {
		team := &domain.Team{
			OrganizationID: orgID,
			Name:           name,
		}
		if err := r.CreateTeam(team); err != nil {
			slog.Error("无法插入团队", "name", name, "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// SeedLocations 插入几个常见的工作地点
func SeedLocations(r *repository.Repository, orgID int64) int {
	locations := []*domain.Location{
		{OrganizationID: orgID, Name: "一号门店", Address: "中山大道 1 号"},
		{OrganizationID: orgID, Name: "二号门店", Address: "环市东路 88 号"},
	}

	cnt := 0
	for _, location := range locations {
		if err := r.CreateLocation(location); err != nil {
			slog.Error("无法插入地点", "name", location.Name, "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// SeedScheduleTemplates 插入几个常用的上班模板，自动排班会按员工序号轮换它们
func SeedScheduleTemplates(r *repository.Repository, orgID int64) int {
	templates := []*domain.ScheduleTemplate{
		{
			OrganizationID: orgID,
			Name:           "早班",
			ShiftType:      domain.ShiftTypeOnShift,
			StartTime:      "08:00:00",
			EndTime:        "16:00:00",
			BreakMinutes:   30,
			Color:          "#2ecc71",
		},
		{
			OrganizationID: orgID,
			Name:           "中班",
			ShiftType:      domain.ShiftTypeOnShift,
			StartTime:      "12:00:00",
			EndTime:        "20:00:00",
			BreakMinutes:   30,
			Color:          "#3788d8",
		},
		{
			OrganizationID: orgID,
			Name:           "夜班",
			ShiftType:      domain.ShiftTypeOnShift,
			StartTime:      "22:00:00",
			EndTime:        "06:00:00", // 跨夜，结束时刻落在次日
			BreakMinutes:   45,
			Color:          "#34495e",
		},
	}

	cnt := 0
	for _, tpl := range templates {
		if err := r.CreateScheduleTemplate(tpl); err != nil {
			slog.Error("无法插入模板", "name", tpl.Name, "error", err)
			continue
		}
		cnt++
	}
	return cnt
}
