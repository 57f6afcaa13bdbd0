package repository

import (
	"context"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func (r *Repository) CreateNotification(n *domain.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO notifications (employee_id, event, content)
		VALUES ($1, $2, $3)
		RETURNING id, is_read, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, n.EmployeeID, n.Event, n.Content).Scan(&n.ID, &n.IsRead, &n.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) QueryNotifications(employeeID int64) ([]*domain.Notification, error) {
	query := `
		SELECT id, event, content, is_read, created_at
		FROM notifications WHERE employee_id = $1
		ORDER BY created_at DESC
		LIMIT 50
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{
			EmployeeID: employeeID,
		}
		if err := rows.Scan(&n.ID, &n.Event, &n.Content, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
