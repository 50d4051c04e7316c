package postgres

import (
	"context"
	"database/sql"
	"errors"

	"worshipscheduler/internal/domain"
)

type teamRepository struct {
	DB *sql.DB
}

// NewTeamRepository returns the Postgres-backed team store. It doubles as the
// membership directory the swap engine consumes.
func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &teamRepository{DB: db}
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	query := `
		SELECT id, name, leader_id, created_at, updated_at
		FROM teams
		WHERE id = $1
	`
	t := &domain.Team{}
	err := queryer(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.LeaderID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) GetLeader(ctx context.Context, teamID string) (string, error) {
	query := `SELECT leader_id FROM teams WHERE id = $1`
	var leaderID string
	err := queryer(ctx, r.DB).QueryRowContext(ctx, query, teamID).Scan(&leaderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return leaderID, nil
}

func (r *teamRepository) GetMembers(ctx context.Context, teamID string) ([]string, error) {
	query := `
		SELECT member_id
		FROM team_members
		WHERE team_id = $1
		ORDER BY member_id
	`
	rows, err := queryer(ctx, r.DB).QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	members := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		members = append(members, id)
	}
	return members, rows.Err()
}
