package repository

import (
	"context"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// QueryTemplates 返回组织的全部班次模板，内置模板排在前面
func (r *Repository) QueryTemplates(orgID int64) ([]*domain.ScheduleTemplate, error) {
	query := `
		SELECT id, name, shift_type, start_time, end_time, break_minutes, color, is_default, created_at, version
		FROM schedule_templates WHERE organization_id = $1
		ORDER BY is_default DESC, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.ScheduleTemplate, 0)
	for rows.Next() {
		tpl := &domain.ScheduleTemplate{
			OrganizationID: orgID,
		}
		dst := []any{
			&tpl.ID, &tpl.Name, &tpl.ShiftType, &tpl.StartTime, &tpl.EndTime,
			&tpl.BreakMinutes, &tpl.Color, &tpl.IsDefault, &tpl.CreatedAt, &tpl.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *Repository) GetScheduleTemplate(id int64) (*domain.ScheduleTemplate, error) {
	query := `
		SELECT organization_id, name, shift_type, start_time, end_time, break_minutes, color, is_default, created_at, version
		FROM schedule_templates WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tpl := &domain.ScheduleTemplate{
		ID: id,
	}

	dst := []any{
		&tpl.OrganizationID, &tpl.Name, &tpl.ShiftType, &tpl.StartTime, &tpl.EndTime,
		&tpl.BreakMinutes, &tpl.Color, &tpl.IsDefault, &tpl.CreatedAt, &tpl.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return tpl, nil
}

// GetDefaultTemplate 按名称获取内置模板（Emergency / Paid Leave / Day Off）
func (r *Repository) GetDefaultTemplate(orgID int64, name string) (*domain.ScheduleTemplate, error) {
	query := `
		SELECT id, shift_type, start_time, end_time, break_minutes, color, is_default, created_at, version
		FROM schedule_templates WHERE organization_id = $1 AND name = $2 AND is_default = true
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	tpl := &domain.ScheduleTemplate{
		OrganizationID: orgID,
		Name:           name,
	}

	dst := []any{
		&tpl.ID, &tpl.ShiftType, &tpl.StartTime, &tpl.EndTime,
		&tpl.BreakMinutes, &tpl.Color, &tpl.IsDefault, &tpl.CreatedAt, &tpl.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, orgID, name).Scan(dst...); err != nil {
		return nil, err
	}

	return tpl, nil
}

func (r *Repository) CreateScheduleTemplate(tpl *domain.ScheduleTemplate) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO schedule_templates (organization_id, name, shift_type, start_time, end_time, break_minutes, color, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	args := []any{tpl.OrganizationID, tpl.Name, tpl.ShiftType, tpl.StartTime, tpl.EndTime, tpl.BreakMinutes, tpl.Color, tpl.IsDefault}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&tpl.ID, &tpl.CreatedAt, &tpl.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateScheduleTemplate(tpl *domain.ScheduleTemplate) error {
	query := `
		UPDATE schedule_templates
		SET
			name = $1,
			shift_type = $2,
			start_time = $3,
			end_time = $4,
			break_minutes = $5,
			color = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{tpl.Name, tpl.ShiftType, tpl.StartTime, tpl.EndTime, tpl.BreakMinutes, tpl.Color, tpl.ID, tpl.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&tpl.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteScheduleTemplate(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM schedule_templates WHERE id = $1
	`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
