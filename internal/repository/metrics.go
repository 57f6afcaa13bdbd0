package repository

import (
	"context"
	"time"
)

// 仪表盘的各个计数只是对同一批数据源做不同的过滤组合。
// 每个计数各自带一个较短的超时，调用方把超时当作 0 处理，
// 保证个别慢查询不会拖垮整个仪表盘

func (r *Repository) metricsContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Metrics.SubQueryTimeout)*time.Second)
}

// CountShiftsBetween 统计 [start, end) 时刻区间内的班次数（用于"今日班次"）
func (r *Repository) CountShiftsBetween(orgID int64, start time.Time, end time.Time) (int64, error) {
	ctx, cancel := r.metricsContext()
	defer cancel()

	query := `
		SELECT COUNT(*) FROM shifts
		WHERE organization_id = $1 AND start_time >= $2 AND start_time < $3 AND status <> 'cancelled'
	`

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, orgID, start, end).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountActiveNow 统计此刻正在上班的员工数
func (r *Repository) CountActiveNow(orgID int64, now time.Time) (int64, error) {
	ctx, cancel := r.metricsContext()
	defer cancel()

	query := `
		SELECT COUNT(DISTINCT employee_id) FROM shifts
		WHERE organization_id = $1 AND start_time <= $2 AND end_time > $2
			AND shift_type = 'on_shift' AND status <> 'cancelled'
	`

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, orgID, now).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountPendingShifts 统计还停留在 scheduled 状态、等待确认的班次数
func (r *Repository) CountPendingShifts(orgID int64, since time.Time) (int64, error) {
	ctx, cancel := r.metricsContext()
	defer cancel()

	query := `
		SELECT COUNT(*) FROM shifts
		WHERE organization_id = $1 AND status = 'scheduled' AND start_time >= $2
	`

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, orgID, since).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountNewHires 统计 since 之后入职的员工数
func (r *Repository) CountNewHires(orgID int64, since time.Time) (int64, error) {
	ctx, cancel := r.metricsContext()
	defer cancel()

	query := `
		SELECT COUNT(*) FROM users
		WHERE organization_id = $1 AND created_at >= $2 AND is_active = true
	`

	var count int64
	if err := r.dbpool.QueryRowContext(ctx, query, orgID, since).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
