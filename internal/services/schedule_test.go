package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worshipscheduler/internal/domain"
)

func newScheduleFixture() (domain.ScheduleService, *fakeScheduleRepo, *fakeTeamRepo) {
	schedules := newFakeScheduleRepo()
	teams := newFakeTeamRepo()
	teams.add("team-a", "Team A", "l1", "l1", "m1", "m2")
	teams.add("team-b", "Team B", "l2", "l2", "m3")
	svc := NewScheduleService(schedules, teams, &passthroughTx{}, time.Second)
	return svc, schedules, teams
}

func TestScheduleService_CreateSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("creates schedule with full pending roster", func(t *testing.T) {
		svc, schedules, _ := newScheduleFixture()
		date := time.Date(2025, 9, 7, 10, 0, 0, 0, time.UTC)

		created, err := svc.CreateSchedule(ctx, "l1", "team-a", date)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "team-a", created.TeamID)
		assert.Equal(t, "Team A", created.TeamName)
		assert.True(t, created.ServiceDate.Equal(date))

		roster := schedules.rosters[created.ID]
		require.Len(t, roster, 3)
		for _, p := range roster {
			assert.Equal(t, domain.ParticipantPending, p.Status)
		}
	})

	t.Run("non-leader is forbidden", func(t *testing.T) {
		svc, _, _ := newScheduleFixture()
		_, err := svc.CreateSchedule(ctx, "m1", "team-a", time.Now())
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, _, _ := newScheduleFixture()
		_, err := svc.CreateSchedule(ctx, "l1", "nope", time.Now())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestScheduleService_ListSwapCandidates(t *testing.T) {
	ctx := context.Background()
	svc, schedules, _ := newScheduleFixture()

	future := time.Now().AddDate(0, 0, 7)
	past := time.Now().AddDate(0, 0, -7)
	mine := schedules.add(future, "team-a", "Team A")
	upcoming := schedules.add(future.AddDate(0, 0, 7), "team-b", "Team B")
	schedules.add(past, "team-b", "Team B")

	t.Run("returns upcoming schedules excluding the initiating one", func(t *testing.T) {
		candidates, err := svc.ListSwapCandidates(ctx, "l1", mine.ID)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, upcoming.ID, candidates[0].ID)
	})

	t.Run("caller must lead the schedule's team", func(t *testing.T) {
		_, err := svc.ListSwapCandidates(ctx, "l2", mine.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown schedule", func(t *testing.T) {
		_, err := svc.ListSwapCandidates(ctx, "l1", "nope")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestScheduleService_SetParticipation(t *testing.T) {
	ctx := context.Background()
	svc, schedules, _ := newScheduleFixture()
	s := schedules.add(time.Now().AddDate(0, 0, 7), "team-a", "Team A")
	require.NoError(t, schedules.ReplaceParticipants(ctx, s.ID, []string{"l1", "m1", "m2"}))

	t.Run("member confirms their row", func(t *testing.T) {
		err := svc.SetParticipation(ctx, "m1", s.ID, domain.ParticipantConfirmed)
		require.NoError(t, err)
		for _, p := range schedules.rosters[s.ID] {
			if p.MemberID == "m1" {
				assert.Equal(t, domain.ParticipantConfirmed, p.Status)
			}
		}
	})

	t.Run("pending is not a valid response", func(t *testing.T) {
		err := svc.SetParticipation(ctx, "m1", s.ID, domain.ParticipantPending)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("caller not on the roster", func(t *testing.T) {
		err := svc.SetParticipation(ctx, "m3", s.ID, domain.ParticipantDeclined)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestScheduleService_RefreshRoster(t *testing.T) {
	ctx := context.Background()
	svc, schedules, teams := newScheduleFixture()
	s := schedules.add(time.Now().AddDate(0, 0, 7), "team-a", "Team A")
	require.NoError(t, schedules.ReplaceParticipants(ctx, s.ID, []string{"l1", "m1"}))
	require.NoError(t, schedules.SetParticipantStatus(ctx, s.ID, "m1", domain.ParticipantConfirmed))

	// Membership changed since the roster was generated.
	teams.members["team-a"] = []string{"l1", "m1", "m9"}

	t.Run("leader refresh resets roster from current membership", func(t *testing.T) {
		_, err := svc.RefreshRoster(ctx, "l1", s.ID)
		require.NoError(t, err)

		roster := schedules.rosters[s.ID]
		ids := make([]string, 0, len(roster))
		for _, p := range roster {
			assert.Equal(t, domain.ParticipantPending, p.Status)
			ids = append(ids, p.MemberID)
		}
		assert.ElementsMatch(t, []string{"l1", "m1", "m9"}, ids)
	})

	t.Run("non-leader is forbidden", func(t *testing.T) {
		_, err := svc.RefreshRoster(ctx, "m1", s.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}
