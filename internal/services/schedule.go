package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worshipscheduler/internal/domain"
)

type scheduleService struct {
	scheduleRepo   domain.ScheduleRepository
	teamRepo       domain.TeamRepository
	tx             domain.Transactor
	contextTimeout time.Duration
}

// NewScheduleService creates a ScheduleService with the given repositories.
func NewScheduleService(
	scheduleRepo domain.ScheduleRepository,
	teamRepo domain.TeamRepository,
	tx domain.Transactor,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		scheduleRepo:   scheduleRepo,
		teamRepo:       teamRepo,
		tx:             tx,
		contextTimeout: timeout,
	}
}

// CreateSchedule assigns teamID to serviceDate and generates the initial
// roster from the team's current members. Only the team's leader may create
// its schedules.
func (s *scheduleService) CreateSchedule(ctx context.Context, callerID, teamID string, serviceDate time.Time) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	if team.LeaderID != callerID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	schedule := domain.NewSchedule(serviceDate, teamID, now, now)
	schedule.TeamName = team.Name

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
			return fmt.Errorf("create schedule: %w", err)
		}
		members, err := s.teamRepo.GetMembers(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team members: %w", err)
		}
		if err := s.scheduleRepo.ReplaceParticipants(ctx, schedule.ID, members); err != nil {
			return fmt.Errorf("generate roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *scheduleService) ListSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.scheduleRepo.List(ctx)
}

// ListSwapCandidates applies the boundary filter for the swap UI: schedules
// dated today or later, excluding the initiating schedule. The caller must
// lead the initiating schedule's team.
func (s *scheduleService) ListSwapCandidates(ctx context.Context, callerID, scheduleID string) ([]*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	leaderID, err := s.teamRepo.GetLeader(ctx, schedule.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve leader: %w", err)
	}
	if leaderID != callerID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	candidates, err := s.scheduleRepo.ListUpcoming(ctx, startOfToday, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("list upcoming schedules: %w", err)
	}
	return candidates, nil
}

// SetParticipation lets a member confirm or decline their own roster row.
func (s *scheduleService) SetParticipation(ctx context.Context, callerID, scheduleID string, status domain.ParticipantStatus) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if status != domain.ParticipantConfirmed && status != domain.ParticipantDeclined {
		return domain.ErrInvalidInput
	}
	if err := s.scheduleRepo.SetParticipantStatus(ctx, scheduleID, callerID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set participant status: %w", err)
	}
	return nil
}

// RefreshRoster fully replaces the roster from the team's current membership,
// resetting every status to pending. Leader only.
func (s *scheduleService) RefreshRoster(ctx context.Context, callerID, scheduleID string) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	leaderID, err := s.teamRepo.GetLeader(ctx, schedule.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve leader: %w", err)
	}
	if leaderID != callerID {
		return nil, domain.ErrForbidden
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		members, err := s.teamRepo.GetMembers(ctx, schedule.TeamID)
		if err != nil {
			return fmt.Errorf("get team members: %w", err)
		}
		if err := s.scheduleRepo.ReplaceParticipants(ctx, scheduleID, members); err != nil {
			return fmt.Errorf("replace roster: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}
