package domain

import (
	"context"
	"time"
)

// ParticipantStatus is a member's attendance state on a schedule roster.
type ParticipantStatus string

const (
	ParticipantPending   ParticipantStatus = "pending"
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantDeclined  ParticipantStatus = "declined"
)

// Valid reports whether s is one of the known participant statuses.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantPending, ParticipantConfirmed, ParticipantDeclined:
		return true
	}
	return false
}

// Participant is one member's row on a schedule roster.
// swagger:model Participant
type Participant struct {
	ScheduleID string            `json:"schedule_id"`
	MemberID   string            `json:"member_id"`
	Name       string            `json:"name"`
	Status     ParticipantStatus `json:"status"`
}

// Schedule assigns one worship team to one service date, with a per-member
// attendance roster. TeamID changes when a swap is accepted; the roster is
// then regenerated from the new team's current membership.
// swagger:model Schedule
type Schedule struct {
	ID           string         `json:"id"`
	ServiceDate  time.Time      `json:"service_date"`
	TeamID       string         `json:"team_id"`
	TeamName     string         `json:"team_name"`
	Participants []*Participant `json:"participants,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewSchedule returns a new Schedule. ID is set by the repository on create.
func NewSchedule(serviceDate time.Time, teamID string, createdAt, updatedAt time.Time) *Schedule {
	return &Schedule{
		ServiceDate: serviceDate,
		TeamID:      teamID,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// ScheduleRepository defines the interface for schedule and roster storage.
// Mutating methods participate in a transaction when the context carries one
// (see Transactor).
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, id string) (*Schedule, error)
	// List returns all schedules, each resolved with its team name and roster.
	List(ctx context.Context) ([]*Schedule, error)
	// ListUpcoming returns schedules dated from or later, excluding excludeID.
	ListUpcoming(ctx context.Context, from time.Time, excludeID string) ([]*Schedule, error)
	// ReassignTeam overwrites the schedule's team. It does not touch the
	// roster; callers sequence roster replacement separately so a two-sided
	// swap can reassign both schedules before regenerating either roster.
	ReassignTeam(ctx context.Context, scheduleID, newTeamID string) error
	// ReplaceParticipants deletes the schedule's roster and inserts one
	// pending row per member ID. Prior confirmation state is discarded.
	ReplaceParticipants(ctx context.Context, scheduleID string, memberIDs []string) error
	// SetParticipantStatus updates one member's own roster row.
	SetParticipantStatus(ctx context.Context, scheduleID, memberID string, status ParticipantStatus) error
}

// ScheduleService defines the business logic for schedules and rosters.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, callerID, teamID string, serviceDate time.Time) (*Schedule, error)
	ListSchedules(ctx context.Context) ([]*Schedule, error)
	// ListSwapCandidates returns the schedules a leader may propose to swap
	// with: dated today or later and not the initiating schedule itself.
	ListSwapCandidates(ctx context.Context, callerID, scheduleID string) ([]*Schedule, error)
	SetParticipation(ctx context.Context, callerID, scheduleID string, status ParticipantStatus) error
	// RefreshRoster re-derives the roster from the team's current membership.
	RefreshRoster(ctx context.Context, callerID, scheduleID string) (*Schedule, error)
}

// Transactor runs fn within a storage transaction carried on the context.
// Repository methods called inside fn join that transaction. If fn returns an
// error the transaction is rolled back; a rollback failure is reported as
// ErrInconsistentState with both causes attached.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
