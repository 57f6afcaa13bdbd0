package repository

import (
	"context"
	"time"

	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

func (r *Repository) QueryTeams(orgID int64) ([]*domain.Team, error) {
	query := `
		SELECT id, name, created_at, version
		FROM teams WHERE organization_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team := &domain.Team{
			OrganizationID: orgID,
		}
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt, &team.Version); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return teams, nil
}

func (r *Repository) CreateTeam(team *domain.Team) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO teams (organization_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := r.dbpool.QueryRowContext(ctx, query, team.OrganizationID, team.Name).Scan(&team.ID, &team.CreatedAt, &team.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) QueryLocations(orgID int64) ([]*domain.Location, error) {
	query := `
		SELECT id, name, address, created_at, version
		FROM locations WHERE organization_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		location := &domain.Location{
			OrganizationID: orgID,
		}
		if err := rows.Scan(&location.ID, &location.Name, &location.Address, &location.CreatedAt, &location.Version); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}

func (r *Repository) CreateLocation(location *domain.Location) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO locations (organization_id, name, address)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{location.OrganizationID, location.Name, location.Address}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&location.ID, &location.CreatedAt, &location.Version); err != nil {
		return err
	}

	return nil
}
