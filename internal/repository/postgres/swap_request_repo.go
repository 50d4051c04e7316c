package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"worshipscheduler/internal/domain"
)

type swapRequestRepository struct {
	DB *sql.DB
}

func NewSwapRequestRepository(db *sql.DB) domain.SwapRequestRepository {
	return &swapRequestRepository{
		DB: db,
	}
}

// Create relies on a partial unique index over the unordered schedule pair:
//
//	CREATE UNIQUE INDEX swap_requests_pending_pair ON swap_requests
//	  (LEAST(initiating_schedule_id, target_schedule_id),
//	   GREATEST(initiating_schedule_id, target_schedule_id))
//	  WHERE status = 'pending';
//
// so an opposite-direction pending request for the same two schedules is also
// a conflict.
func (r *swapRequestRepository) Create(ctx context.Context, req *domain.SwapRequest) error {
	query := `
		INSERT INTO swap_requests (initiating_schedule_id, target_schedule_id, initiating_leader_id, target_leader_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := queryer(ctx, r.DB).QueryRowContext(ctx, query,
		req.InitiatingScheduleID, req.TargetScheduleID,
		req.InitiatingLeaderID, req.TargetLeaderID,
		req.Status, req.CreatedAt,
	).Scan(&req.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *swapRequestRepository) GetPendingForResponder(ctx context.Context, id, responderID string) (*domain.SwapRequest, error) {
	query := `
		SELECT id, initiating_schedule_id, target_schedule_id, initiating_leader_id, target_leader_id, status, created_at, responded_at
		FROM swap_requests
		WHERE id = $1 AND status = $2 AND target_leader_id = $3
	`
	req := &domain.SwapRequest{}
	var respondedAt sql.NullTime
	err := queryer(ctx, r.DB).QueryRowContext(ctx, query, id, domain.SwapPending, responderID).Scan(
		&req.ID, &req.InitiatingScheduleID, &req.TargetScheduleID,
		&req.InitiatingLeaderID, &req.TargetLeaderID,
		&req.Status, &req.CreatedAt, &respondedAt,
	)
	if err != nil {
		// "doesn't exist", "already resolved", and "not yours" are one
		// signal so callers cannot probe for other leaders' requests.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if respondedAt.Valid {
		req.RespondedAt = &respondedAt.Time
	}
	return req, nil
}

func (r *swapRequestRepository) MarkResponded(ctx context.Context, id string, status domain.SwapStatus, respondedAt time.Time) error {
	query := `
		UPDATE swap_requests
		SET status = $2, responded_at = $3
		WHERE id = $1 AND status = $4
	`
	result, err := queryer(ctx, r.DB).ExecContext(ctx, query, id, status, respondedAt, domain.SwapPending)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Lost the race: someone else already resolved this request.
		return domain.ErrConflict
	}
	return nil
}

func (r *swapRequestRepository) ListForLeader(ctx context.Context, leaderID string) ([]*domain.SwapRequest, error) {
	query := `
		SELECT id, initiating_schedule_id, target_schedule_id, initiating_leader_id, target_leader_id, status, created_at, responded_at
		FROM swap_requests
		WHERE initiating_leader_id = $1 OR target_leader_id = $1
		ORDER BY created_at DESC
	`
	rows, err := queryer(ctx, r.DB).QueryContext(ctx, query, leaderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	requests := make([]*domain.SwapRequest, 0)
	for rows.Next() {
		req := &domain.SwapRequest{}
		var respondedAt sql.NullTime
		if err := rows.Scan(
			&req.ID, &req.InitiatingScheduleID, &req.TargetScheduleID,
			&req.InitiatingLeaderID, &req.TargetLeaderID,
			&req.Status, &req.CreatedAt, &respondedAt,
		); err != nil {
			return nil, err
		}
		if respondedAt.Valid {
			req.RespondedAt = &respondedAt.Time
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *swapRequestRepository) DeleteOrphanedPending(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM swap_requests
		WHERE status = $1
		  AND (NOT EXISTS (SELECT 1 FROM schedules s WHERE s.id = initiating_schedule_id)
		   OR  NOT EXISTS (SELECT 1 FROM schedules s WHERE s.id = target_schedule_id))
	`
	result, err := queryer(ctx, r.DB).ExecContext(ctx, query, domain.SwapPending)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
