package domain

import (
	"context"
	"time"
)

// Team is a named worship team with one designated leader.
// swagger:model Team
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LeaderID  string    `json:"leader_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipDirectory resolves a team to its leader and current member set.
// Roster regeneration always reads it fresh; results are never cached or
// merged with prior roster state.
type MembershipDirectory interface {
	// GetLeader returns the team's leader ID, or ErrNotFound if the team
	// does not exist.
	GetLeader(ctx context.Context, teamID string) (string, error)
	// GetMembers returns the IDs of the team's current members.
	GetMembers(ctx context.Context, teamID string) ([]string, error)
}

// TeamRepository defines the interface for team storage.
type TeamRepository interface {
	MembershipDirectory
	GetByID(ctx context.Context, id string) (*Team, error)
}
