package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// ShiftFilters 是查询班次时的可选过滤条件
type ShiftFilters struct {
	EmployeeID *int64
	TeamID     *int64
	LocationID *int64
	Status     *domain.ShiftStatus
	ShiftType  *domain.ShiftType
}

// QueryShifts 查询组织在 [start, end) 时刻区间内的班次
func (r *Repository) QueryShifts(orgID int64, start time.Time, end time.Time, filters ShiftFilters) ([]*domain.Shift, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			s.id, s.organization_id, s.employee_id, s.location_id,
			s.start_time, s.end_time, s.break_minutes, s.status, s.shift_type,
			s.color, s.notes, s.created_by, s.created_at, s.updated_at, s.version
		FROM shifts s
		JOIN users u ON u.id = s.employee_id
		WHERE s.organization_id = $1 AND s.start_time >= $2 AND s.start_time < $3
	`
	args := []any{orgID, start, end}

	if filters.EmployeeID != nil {
		args = append(args, *filters.EmployeeID)
		query += fmt.Sprintf(" AND s.employee_id = $%d", len(args))
	}
	if filters.TeamID != nil {
		args = append(args, *filters.TeamID)
		query += fmt.Sprintf(" AND u.team_id = $%d", len(args))
	}
	if filters.LocationID != nil {
		args = append(args, *filters.LocationID)
		query += fmt.Sprintf(" AND s.location_id = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND s.status = $%d", len(args))
	}
	if filters.ShiftType != nil {
		args = append(args, *filters.ShiftType)
		query += fmt.Sprintf(" AND s.shift_type = $%d", len(args))
	}

	query += " ORDER BY s.start_time, s.employee_id"

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{
			&shift.ID, &shift.OrganizationID, &shift.EmployeeID, &shift.LocationID,
			&shift.StartTime, &shift.EndTime, &shift.BreakMinutes, &shift.Status, &shift.ShiftType,
			&shift.Color, &shift.Notes, &shift.CreatedBy, &shift.CreatedAt, &shift.UpdatedAt, &shift.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT
			organization_id, employee_id, location_id, start_time, end_time,
			break_minutes, status, shift_type, color, notes, created_by,
			created_at, updated_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{
		&shift.OrganizationID, &shift.EmployeeID, &shift.LocationID, &shift.StartTime, &shift.EndTime,
		&shift.BreakMinutes, &shift.Status, &shift.ShiftType, &shift.Color, &shift.Notes, &shift.CreatedBy,
		&shift.CreatedAt, &shift.UpdatedAt, &shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shifts (
			organization_id, employee_id, location_id, start_time, end_time,
			break_minutes, status, shift_type, color, notes, created_by, local_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at, version
	`

	args := []any{
		shift.OrganizationID, shift.EmployeeID, shift.LocationID, shift.StartTime, shift.EndTime,
		shift.BreakMinutes, shift.Status, shift.ShiftType, shift.Color, shift.Notes, shift.CreatedBy,
		shift.LocalDate,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			employee_id = $1,
			location_id = $2,
			start_time = $3,
			end_time = $4,
			break_minutes = $5,
			status = $6,
			shift_type = $7,
			color = $8,
			notes = $9,
			local_date = $10,
			updated_at = now(),
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING created_at, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.EmployeeID, shift.LocationID, shift.StartTime, shift.EndTime,
		shift.BreakMinutes, shift.Status, shift.ShiftType, shift.Color, shift.Notes,
		shift.LocalDate, shift.ID, shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.UpdatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// DeleteShiftsInRange 批量清空组织在 [start, end) 时刻区间内的所有班次
func (r *Repository) DeleteShiftsInRange(orgID int64, start time.Time, end time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		DELETE FROM shifts WHERE organization_id = $1 AND start_time >= $2 AND start_time < $3
	`

	result, err := r.dbpool.ExecContext(ctx, query, orgID, start, end)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
