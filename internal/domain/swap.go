package domain

import (
	"context"
	"time"
)

// SwapStatus is the lifecycle state of a swap request. A request is created
// pending and transitions exactly once to accepted or rejected.
type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapAccepted SwapStatus = "accepted"
	SwapRejected SwapStatus = "rejected"
)

// SwapRequest records a proposed exchange of team assignments between two
// schedules. Both leader IDs are captured at creation time.
// swagger:model SwapRequest
type SwapRequest struct {
	ID                   string     `json:"id"`
	InitiatingScheduleID string     `json:"initiating_schedule_id"`
	TargetScheduleID     string     `json:"target_schedule_id"`
	InitiatingLeaderID   string     `json:"initiating_leader_id"`
	TargetLeaderID       string     `json:"target_leader_id"`
	Status               SwapStatus `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	RespondedAt          *time.Time `json:"responded_at,omitempty"`
}

// NewSwapRequest returns a pending SwapRequest. ID is set by the repository
// on create.
func NewSwapRequest(initiatingScheduleID, targetScheduleID, initiatingLeaderID, targetLeaderID string, createdAt time.Time) *SwapRequest {
	return &SwapRequest{
		InitiatingScheduleID: initiatingScheduleID,
		TargetScheduleID:     targetScheduleID,
		InitiatingLeaderID:   initiatingLeaderID,
		TargetLeaderID:       targetLeaderID,
		Status:               SwapPending,
		CreatedAt:            createdAt,
	}
}

// SwapRequestRepository defines the interface for swap request storage.
type SwapRequestRepository interface {
	// Create inserts a pending request. Returns ErrConflict if a pending
	// request already exists for the schedule pair; the pair is unordered,
	// so an opposite-direction pending request also conflicts.
	Create(ctx context.Context, req *SwapRequest) error
	// GetPendingForResponder returns the request only if it is still pending
	// and responderID is its target leader. Any other case is ErrNotFound.
	GetPendingForResponder(ctx context.Context, id, responderID string) (*SwapRequest, error)
	// MarkResponded performs the one-shot terminal transition as a
	// conditional update gated on the row still being pending. Returns
	// ErrConflict when the gate fails, so the loser of a double-accept race
	// cannot re-run the mutation.
	MarkResponded(ctx context.Context, id string, status SwapStatus, respondedAt time.Time) error
	// ListForLeader returns requests where leaderID is either side.
	ListForLeader(ctx context.Context, leaderID string) ([]*SwapRequest, error)
	// DeleteOrphanedPending removes pending requests that reference a
	// schedule that no longer exists. Returns the number removed.
	DeleteOrphanedPending(ctx context.Context) (int64, error)
}

// SwapService is the negotiation engine: it validates eligibility, records
// proposals, and on acceptance exchanges the two schedules' teams and
// regenerates both rosters.
type SwapService interface {
	CreateSwapRequest(ctx context.Context, callerID, initiatingScheduleID, targetScheduleID string) (*SwapRequest, error)
	RespondToSwapRequest(ctx context.Context, responderID, requestID string, response SwapStatus) (*SwapRequest, error)
	ListSwapRequests(ctx context.Context, leaderID string) ([]*SwapRequest, error)
	ExpireOrphanedRequests(ctx context.Context) (int64, error)
}
