package repository

import (
	"context"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func (r *Repository) GetOrganizationByID(id int64) (*domain.Organization, error) {
	query := `
		SELECT name, timezone, days_off_per_week, days_off_distribution, created_at, version
		FROM organizations WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	org := &domain.Organization{
		ID: id,
	}

	dst := []any{&org.Name, &org.Timezone, &org.DaysOffPerWeek, &org.DaysOffDistribution, &org.CreatedAt, &org.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return org, nil
}

func (r *Repository) GetOrganizationByName(name string) (*domain.Organization, error) {
	query := `
		SELECT id, timezone, days_off_per_week, days_off_distribution, created_at, version
		FROM organizations WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	org := &domain.Organization{
		Name: name,
	}

	dst := []any{&org.ID, &org.Timezone, &org.DaysOffPerWeek, &org.DaysOffDistribution, &org.CreatedAt, &org.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(dst...); err != nil {
		return nil, err
	}

	return org, nil
}

func (r *Repository) CreateOrganization(org *domain.Organization) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO organizations (name, timezone, days_off_per_week, days_off_distribution)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{org.Name, org.Timezone, org.DaysOffPerWeek, org.DaysOffDistribution}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&org.ID, &org.CreatedAt, &org.Version); err != nil {
		return err
	}

	return nil
}

// UpdateOrganizationSettings 更新排班相关的组织设置
func (r *Repository) UpdateOrganizationSettings(org *domain.Organization) error {
	query := `
		UPDATE organizations
		SET
			timezone = $1,
			days_off_per_week = $2,
			days_off_distribution = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{org.Timezone, org.DaysOffPerWeek, org.DaysOffDistribution, org.ID, org.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&org.Version); err != nil {
		return err
	}

	return nil
}
