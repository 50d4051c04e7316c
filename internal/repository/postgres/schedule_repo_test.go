package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"worshipscheduler/internal/domain"
)

func TestScheduleRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	serviceDate := time.Date(2025, 8, 10, 10, 0, 0, 0, time.UTC)
	now := time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success includes team name",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT s.id, s.service_date, s.team_id, t.name, s.created_at, s.updated_at`).
					WithArgs("sched-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "service_date", "team_id", "name", "created_at", "updated_at"}).
						AddRow("sched-1", serviceDate, "team-a", "Team A", now, now))
			},
			wantErr: nil,
		},
		{
			name: "missing returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT s.id, s.service_date, s.team_id, t.name`).
					WithArgs("sched-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "service_date", "team_id", "name", "created_at", "updated_at"}))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewScheduleRepository(db)
			got, err := repo.GetByID(ctx, "sched-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "sched-1", got.ID)
			require.Equal(t, "team-a", got.TeamID)
			require.Equal(t, "Team A", got.TeamName)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduleRepository_ListUpcoming(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE s.service_date >= \$1 AND s.id <> \$2`).
		WithArgs(from, "sched-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "service_date", "team_id", "name", "created_at", "updated_at"}).
			AddRow("sched-2", from.AddDate(0, 0, 7), "team-b", "Team B", now, now).
			AddRow("sched-3", from.AddDate(0, 0, 14), "team-c", "Team C", now, now))

	repo := NewScheduleRepository(db)
	got, err := repo.ListUpcoming(ctx, from, "sched-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "sched-2", got[0].ID)
	require.Equal(t, "Team C", got[1].TeamName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_ReassignTeam(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE schedules`).
					WithArgs("sched-1", "team-b").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: nil,
		},
		{
			name: "missing schedule returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE schedules`).
					WithArgs("sched-1", "team-b").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewScheduleRepository(db)
			err = repo.ReassignTeam(ctx, "sched-1", "team-b")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduleRepository_ReplaceParticipants(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM schedule_participants WHERE schedule_id = \$1`).
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO schedule_participants \(schedule_id, member_id, status\)`).
		WithArgs("sched-1", "m1", domain.ParticipantPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO schedule_participants \(schedule_id, member_id, status\)`).
		WithArgs("sched-1", "m2", domain.ParticipantPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewScheduleRepository(db)
	err = repo.ReplaceParticipants(ctx, "sched-1", []string{"m1", "m2"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_SetParticipantStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE schedule_participants`).
					WithArgs("sched-1", "m1", domain.ParticipantConfirmed).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: nil,
		},
		{
			name: "not on roster returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE schedule_participants`).
					WithArgs("sched-1", "m1", domain.ParticipantConfirmed).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewScheduleRepository(db)
			err = repo.SetParticipantStatus(ctx, "sched-1", "m1", domain.ParticipantConfirmed)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
