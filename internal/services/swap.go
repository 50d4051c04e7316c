package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"worshipscheduler/internal/domain"
)

type swapService struct {
	swapRepo       domain.SwapRequestRepository
	scheduleRepo   domain.ScheduleRepository
	teamRepo       domain.TeamRepository
	userRepo       domain.UserRepository
	notifier       domain.NotificationService
	tx             domain.Transactor
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewSwapService creates the swap negotiation engine. All state lives in the
// repositories; the service itself holds no mutable state, so concurrent
// calls for different requests are independent.
func NewSwapService(
	swapRepo domain.SwapRequestRepository,
	scheduleRepo domain.ScheduleRepository,
	teamRepo domain.TeamRepository,
	userRepo domain.UserRepository,
	notifier domain.NotificationService,
	tx domain.Transactor,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SwapService {
	return &swapService{
		swapRepo:       swapRepo,
		scheduleRepo:   scheduleRepo,
		teamRepo:       teamRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		tx:             tx,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// CreateSwapRequest validates eligibility and records a pending proposal.
// Checks run in order, first failure wins:
//
//  1. caller leads the initiating schedule's team (ErrForbidden)
//  2. target schedule exists with a resolvable leader (ErrNotFound)
//  3. target leader differs from the caller (ErrInvalidInput)
//  4. no pending request exists for the pair (ErrConflict, from the repo)
//
// All checks precede the write, so a failed proposal leaves no trace.
func (s *swapService) CreateSwapRequest(ctx context.Context, callerID, initiatingScheduleID, targetScheduleID string) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	initiating, err := s.scheduleRepo.GetByID(ctx, initiatingScheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get initiating schedule: %w", err)
	}
	initiatingLeader, err := s.teamRepo.GetLeader(ctx, initiating.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve initiating leader: %w", err)
	}
	if initiatingLeader != callerID {
		return nil, domain.ErrForbidden
	}

	target, err := s.scheduleRepo.GetByID(ctx, targetScheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get target schedule: %w", err)
	}
	targetLeader, err := s.teamRepo.GetLeader(ctx, target.TeamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resolve target leader: %w", err)
	}

	if targetLeader == callerID {
		return nil, domain.ErrInvalidInput
	}

	req := domain.NewSwapRequest(initiatingScheduleID, targetScheduleID, callerID, targetLeader, time.Now())
	if err := s.swapRepo.Create(ctx, req); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create swap request: %w", err)
	}

	// The request is durably created; notification failure must not undo or
	// fail the proposal.
	s.notifyRequested(ctx, req, initiating, target)

	return req, nil
}

// RespondToSwapRequest resolves a pending request. On acceptance the team
// exchange and both roster regenerations run in one transaction, gated by the
// conditional status update so a double accept cannot re-run the mutation.
func (s *swapService) RespondToSwapRequest(ctx context.Context, responderID, requestID string, response domain.SwapStatus) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if response != domain.SwapAccepted && response != domain.SwapRejected {
		return nil, domain.ErrInvalidInput
	}

	req, err := s.swapRepo.GetPendingForResponder(ctx, requestID, responderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find pending request: %w", err)
	}

	initiating, err := s.scheduleRepo.GetByID(ctx, req.InitiatingScheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A referenced schedule was deleted while the request was
			// pending; the request is no longer actionable.
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get initiating schedule: %w", err)
	}
	target, err := s.scheduleRepo.GetByID(ctx, req.TargetScheduleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get target schedule: %w", err)
	}

	now := time.Now()
	if response == domain.SwapRejected {
		if err := s.swapRepo.MarkResponded(ctx, req.ID, domain.SwapRejected, now); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("mark rejected: %w", err)
		}
		req.Status = domain.SwapRejected
		req.RespondedAt = &now
		s.notifyResponded(ctx, req, initiating, target)
		return req, nil
	}

	// Teams captured before any mutation: these are the values exchanged.
	teamA, teamB := initiating.TeamID, target.TeamID

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Status transition first: it is the atomic gate. If another accept
		// already won, this fails with ErrConflict and nothing else runs.
		if err := s.swapRepo.MarkResponded(ctx, req.ID, domain.SwapAccepted, now); err != nil {
			return err
		}
		if err := s.scheduleRepo.ReassignTeam(ctx, req.InitiatingScheduleID, teamB); err != nil {
			return fmt.Errorf("reassign initiating schedule: %w", err)
		}
		if err := s.scheduleRepo.ReassignTeam(ctx, req.TargetScheduleID, teamA); err != nil {
			return fmt.Errorf("reassign target schedule: %w", err)
		}
		// Both reassignments must land before either roster regenerates:
		// regeneration enrolls the schedule's new team, read fresh from the
		// membership directory.
		if err := s.regenerate(ctx, req.InitiatingScheduleID, teamB); err != nil {
			return err
		}
		if err := s.regenerate(ctx, req.TargetScheduleID, teamA); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		if errors.Is(err, domain.ErrInconsistentState) {
			// Rollback failed after a partial mutation. The request is left
			// non-terminal; an operator must reconcile by hand.
			s.logger.ErrorContext(ctx, "swap acceptance left inconsistent state",
				"swap_request_id", req.ID,
				"initiating_schedule_id", req.InitiatingScheduleID,
				"target_schedule_id", req.TargetScheduleID,
				"err", err,
			)
			return nil, err
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accept swap: %w", err)
	}

	req.Status = domain.SwapAccepted
	req.RespondedAt = &now
	s.notifyResponded(ctx, req, initiating, target)
	return req, nil
}

// regenerate replaces a schedule's roster with teamID's current members, all
// reset to pending.
func (s *swapService) regenerate(ctx context.Context, scheduleID, teamID string) error {
	members, err := s.teamRepo.GetMembers(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get members of team %s: %w", teamID, err)
	}
	if err := s.scheduleRepo.ReplaceParticipants(ctx, scheduleID, members); err != nil {
		return fmt.Errorf("regenerate roster of schedule %s: %w", scheduleID, err)
	}
	return nil
}

func (s *swapService) ListSwapRequests(ctx context.Context, leaderID string) ([]*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.swapRepo.ListForLeader(ctx, leaderID)
}

func (s *swapService) ExpireOrphanedRequests(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	n, err := s.swapRepo.DeleteOrphanedPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned pending requests: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "expired orphaned swap requests", "count", n)
	}
	return n, nil
}

// notifyRequested tells the target leader about a new proposal. Failures are
// logged and swallowed; delivery is not part of the swap's correctness.
func (s *swapService) notifyRequested(ctx context.Context, req *domain.SwapRequest, initiating, target *domain.Schedule) {
	recipient, err := s.userRepo.GetByID(ctx, req.TargetLeaderID)
	if err != nil {
		s.logger.WarnContext(ctx, "swap.requested notification skipped", "swap_request_id", req.ID, "err", err)
		return
	}
	initiator, err := s.userRepo.GetByID(ctx, req.InitiatingLeaderID)
	if err != nil {
		s.logger.WarnContext(ctx, "swap.requested notification skipped", "swap_request_id", req.ID, "err", err)
		return
	}
	data := &domain.SwapRequestedNotification{
		RecipientEmail:     recipient.Email,
		RecipientName:      recipient.Name,
		InitiatorName:      initiator.Name,
		InitiatingDate:     initiating.ServiceDate,
		InitiatingTeamName: initiating.TeamName,
		TargetDate:         target.ServiceDate,
		TargetTeamName:     target.TeamName,
	}
	if err := s.notifier.SwapRequested(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "swap.requested notification failed", "swap_request_id", req.ID, "err", err)
	}
}

// notifyResponded tells the initiating leader the outcome. Same error
// boundary as notifyRequested.
func (s *swapService) notifyResponded(ctx context.Context, req *domain.SwapRequest, initiating, target *domain.Schedule) {
	recipient, err := s.userRepo.GetByID(ctx, req.InitiatingLeaderID)
	if err != nil {
		s.logger.WarnContext(ctx, "swap.responded notification skipped", "swap_request_id", req.ID, "err", err)
		return
	}
	responder, err := s.userRepo.GetByID(ctx, req.TargetLeaderID)
	if err != nil {
		s.logger.WarnContext(ctx, "swap.responded notification skipped", "swap_request_id", req.ID, "err", err)
		return
	}
	data := &domain.SwapRespondedNotification{
		RecipientEmail:     recipient.Email,
		RecipientName:      recipient.Name,
		ResponderName:      responder.Name,
		Accepted:           req.Status == domain.SwapAccepted,
		InitiatingDate:     initiating.ServiceDate,
		InitiatingTeamName: initiating.TeamName,
		TargetDate:         target.ServiceDate,
		TargetTeamName:     target.TeamName,
	}
	if err := s.notifier.SwapResponded(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "swap.responded notification failed", "swap_request_id", req.ID, "err", err)
	}
}
