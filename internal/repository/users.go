package repository

import (
	"context"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT
			u.organization_id, u.username, u.password_hash, u.full_name, u.email,
			u.job_title, u.team_id, COALESCE(t.name, ''), u.role, u.is_active, u.created_at, u.version
		FROM users u
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE u.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{
		&user.OrganizationID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email,
		&user.JobTitle, &user.TeamID, &user.TeamName, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT
			u.id, u.organization_id, u.password_hash, u.full_name, u.email,
			u.job_title, u.team_id, COALESCE(t.name, ''), u.role, u.is_active, u.created_at, u.version
		FROM users u
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE u.username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{
		&user.ID, &user.OrganizationID, &user.PasswordHash, &user.FullName, &user.Email,
		&user.JobTitle, &user.TeamID, &user.TeamName, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			job_title = $3,
			team_id = $4,
			role = $5,
			is_active = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.PasswordHash, user.Email, user.JobTitle, user.TeamID, user.Role, user.IsActive, user.ID, user.Version}
	dst := []any{&user.Username, &user.FullName, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// QueryEmployees 返回组织的全部员工，顺序固定（按 id），
// 自动排班的休息日错开和模板轮换都依赖这个顺序
func (r *Repository) QueryEmployees(orgID int64) ([]*domain.User, error) {
	query := `
		SELECT
			u.id, u.username, u.password_hash, u.full_name, u.email,
			u.job_title, u.team_id, COALESCE(t.name, ''), u.role, u.is_active, u.created_at, u.version
		FROM users u
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE u.organization_id = $1
		ORDER BY u.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{
			OrganizationID: orgID,
		}
		dst := []any{
			&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email,
			&user.JobTitle, &user.TeamID, &user.TeamName, &user.Role, &user.IsActive, &user.CreatedAt, &user.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (organization_id, username, password_hash, full_name, email, job_title, team_id, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`

	args := []any{user.OrganizationID, user.Username, user.PasswordHash, user.FullName, user.Email, user.JobTitle, user.TeamID, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
