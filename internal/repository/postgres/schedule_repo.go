package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"worshipscheduler/internal/domain"
)

type scheduleRepository struct {
	DB *sql.DB
}

func NewScheduleRepository(db *sql.DB) domain.ScheduleRepository {
	return &scheduleRepository{
		DB: db,
	}
}

func (r *scheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	query := `
		INSERT INTO schedules (service_date, team_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return queryer(ctx, r.DB).QueryRowContext(ctx, query, s.ServiceDate, s.TeamID, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `
		SELECT s.id, s.service_date, s.team_id, t.name, s.created_at, s.updated_at
		FROM schedules s
		JOIN teams t ON t.id = s.team_id
		WHERE s.id = $1
	`
	s := &domain.Schedule{}
	err := queryer(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ServiceDate, &s.TeamID, &s.TeamName, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]*domain.Schedule, error) {
	query := `
		SELECT s.id, s.service_date, s.team_id, t.name, s.created_at, s.updated_at
		FROM schedules s
		JOIN teams t ON t.id = s.team_id
		ORDER BY s.service_date
	`
	schedules, err := r.scanSchedules(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := r.attachParticipants(ctx, schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepository) ListUpcoming(ctx context.Context, from time.Time, excludeID string) ([]*domain.Schedule, error) {
	query := `
		SELECT s.id, s.service_date, s.team_id, t.name, s.created_at, s.updated_at
		FROM schedules s
		JOIN teams t ON t.id = s.team_id
		WHERE s.service_date >= $1 AND s.id <> $2
		ORDER BY s.service_date
	`
	return r.scanSchedules(ctx, query, from, excludeID)
}

func (r *scheduleRepository) scanSchedules(ctx context.Context, query string, args ...any) ([]*domain.Schedule, error) {
	rows, err := queryer(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	schedules := make([]*domain.Schedule, 0)
	for rows.Next() {
		s := &domain.Schedule{}
		if err := rows.Scan(&s.ID, &s.ServiceDate, &s.TeamID, &s.TeamName, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *scheduleRepository) attachParticipants(ctx context.Context, schedules []*domain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	ids := make([]string, 0, len(schedules))
	byID := make(map[string]*domain.Schedule, len(schedules))
	for _, s := range schedules {
		ids = append(ids, s.ID)
		byID[s.ID] = s
		s.Participants = make([]*domain.Participant, 0)
	}
	query := `
		SELECT p.schedule_id, p.member_id, u.name, p.status
		FROM schedule_participants p
		JOIN users u ON u.id = p.member_id
		WHERE p.schedule_id = ANY($1)
		ORDER BY u.name
	`
	rows, err := queryer(ctx, r.DB).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		p := &domain.Participant{}
		if err := rows.Scan(&p.ScheduleID, &p.MemberID, &p.Name, &p.Status); err != nil {
			return err
		}
		if s, ok := byID[p.ScheduleID]; ok {
			s.Participants = append(s.Participants, p)
		}
	}
	return rows.Err()
}

func (r *scheduleRepository) ReassignTeam(ctx context.Context, scheduleID, newTeamID string) error {
	query := `
		UPDATE schedules
		SET team_id = $2, updated_at = NOW()
		WHERE id = $1
	`
	result, err := queryer(ctx, r.DB).ExecContext(ctx, query, scheduleID, newTeamID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *scheduleRepository) ReplaceParticipants(ctx context.Context, scheduleID string, memberIDs []string) error {
	q := queryer(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM schedule_participants WHERE schedule_id = $1`, scheduleID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	insert := `
		INSERT INTO schedule_participants (schedule_id, member_id, status)
		VALUES ($1, $2, $3)
	`
	for _, memberID := range memberIDs {
		if _, err := q.ExecContext(ctx, insert, scheduleID, memberID, domain.ParticipantPending); err != nil {
			return fmt.Errorf("insert roster row: %w", err)
		}
	}
	return nil
}

func (r *scheduleRepository) SetParticipantStatus(ctx context.Context, scheduleID, memberID string, status domain.ParticipantStatus) error {
	query := `
		UPDATE schedule_participants
		SET status = $3
		WHERE schedule_id = $1 AND member_id = $2
	`
	result, err := queryer(ctx, r.DB).ExecContext(ctx, query, scheduleID, memberID, status)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
