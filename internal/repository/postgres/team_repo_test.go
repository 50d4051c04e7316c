package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"worshipscheduler/internal/domain"
)

func TestTeamRepository_GetLeader(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT leader_id FROM teams WHERE id = \$1`).
					WithArgs("team-a").
					WillReturnRows(sqlmock.NewRows([]string{"leader_id"}).AddRow("l1"))
			},
			want: "l1",
		},
		{
			name: "missing team returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT leader_id FROM teams WHERE id = \$1`).
					WithArgs("team-a").
					WillReturnRows(sqlmock.NewRows([]string{"leader_id"}))
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
			repo := NewTeamRepository(db)
			got, err := repo.GetLeader(ctx, "team-a")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTeamRepository_GetMembers(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		mock func(mock sqlmock.Sqlmock)
		want []string
	}{
		{
			name: "success returns member ids",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT member_id`).
					WithArgs("team-a").
					WillReturnRows(sqlmock.NewRows([]string{"member_id"}).
						AddRow("l1").
						AddRow("m1").
						AddRow("m2"))
			},
			want: []string{"l1", "m1", "m2"},
		},
		{
			name: "empty team",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT member_id`).
					WithArgs("team-a").
					WillReturnRows(sqlmock.NewRows([]string{"member_id"}))
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTeamRepository(db)
			got, err := repo.GetMembers(ctx, "team-a")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
