package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worshipscheduler/internal/delivery/http/helpers"
	"worshipscheduler/internal/delivery/http/middleware"
	"worshipscheduler/internal/domain"
)

type fakeScheduleService struct {
	createResult     *domain.Schedule
	createErr        error
	listResult       []*domain.Schedule
	listErr          error
	candidatesResult []*domain.Schedule
	candidatesErr    error
	participationErr error
	refreshResult    *domain.Schedule
	refreshErr       error

	gotCallerID   string
	gotScheduleID string
	gotStatus     domain.ParticipantStatus
}

func (f *fakeScheduleService) CreateSchedule(ctx context.Context, callerID, teamID string, serviceDate time.Time) (*domain.Schedule, error) {
	f.gotCallerID = callerID
	return f.createResult, f.createErr
}

func (f *fakeScheduleService) ListSchedules(ctx context.Context) ([]*domain.Schedule, error) {
	return f.listResult, f.listErr
}

func (f *fakeScheduleService) ListSwapCandidates(ctx context.Context, callerID, scheduleID string) ([]*domain.Schedule, error) {
	f.gotCallerID = callerID
	f.gotScheduleID = scheduleID
	return f.candidatesResult, f.candidatesErr
}

func (f *fakeScheduleService) SetParticipation(ctx context.Context, callerID, scheduleID string, status domain.ParticipantStatus) error {
	f.gotCallerID = callerID
	f.gotScheduleID = scheduleID
	f.gotStatus = status
	return f.participationErr
}

func (f *fakeScheduleService) RefreshRoster(ctx context.Context, callerID, scheduleID string) (*domain.Schedule, error) {
	f.gotCallerID = callerID
	f.gotScheduleID = scheduleID
	return f.refreshResult, f.refreshErr
}

func newScheduleMux(c *ScheduleController, userID string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /schedules", c.CreateSchedule)
	mux.HandleFunc("GET /schedules", c.ListSchedules)
	mux.HandleFunc("GET /schedules/{scheduleID}/swap-candidates", c.ListSwapCandidates)
	mux.HandleFunc("PATCH /schedules/{scheduleID}/participation", c.SetParticipation)
	mux.HandleFunc("POST /schedules/{scheduleID}/roster/refresh", c.RefreshRoster)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(middleware.SetUserID(r.Context(), userID))
		}
		mux.ServeHTTP(w, r)
	})
}

func TestScheduleController_CreateSchedule(t *testing.T) {
	created := &domain.Schedule{ID: "sched-1", TeamID: "team-a", TeamName: "Team A"}
	validBody := `{"team_id":"team-a","service_date":"2025-09-07T10:00:00Z"}`

	tests := []struct {
		name       string
		body       string
		userID     string
		svc        *fakeScheduleService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			body:       validBody,
			userID:     "l1",
			svc:        &fakeScheduleService{createResult: created},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing team_id",
			body:       `{"service_date":"2025-09-07T10:00:00Z"}`,
			userID:     "l1",
			svc:        &fakeScheduleService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "non-leader forbidden",
			body:       validBody,
			userID:     "m1",
			svc:        &fakeScheduleService{createErr: domain.ErrForbidden},
			wantStatus: http.StatusForbidden,
			wantCode:   helpers.ErrCodeForbidden,
		},
		{
			name:       "unknown team",
			body:       validBody,
			userID:     "l1",
			svc:        &fakeScheduleService{createErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newScheduleMux(NewScheduleController(testLogger, tt.svc), tt.userID)
			req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec.Body)
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			require.Nil(t, resp.Error)
		})
	}
}

func TestScheduleController_ListSwapCandidates(t *testing.T) {
	svc := &fakeScheduleService{candidatesResult: []*domain.Schedule{{ID: "sched-2"}}}
	handler := newScheduleMux(NewScheduleController(testLogger, svc), "l1")

	req := httptest.NewRequest(http.MethodGet, "/schedules/sched-1/swap-candidates", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "l1", svc.gotCallerID)
	assert.Equal(t, "sched-1", svc.gotScheduleID)

	var resp ScheduleListSuccessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 1)
}

func TestScheduleController_SetParticipation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeScheduleService
		wantStatus int
	}{
		{
			name:       "confirmed returns 204",
			body:       `{"status":"confirmed"}`,
			svc:        &fakeScheduleService{},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "pending is not a valid response",
			body:       `{"status":"pending"}`,
			svc:        &fakeScheduleService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not on roster",
			body:       `{"status":"declined"}`,
			svc:        &fakeScheduleService{participationErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newScheduleMux(NewScheduleController(testLogger, tt.svc), "m1")
			req := httptest.NewRequest(http.MethodPatch, "/schedules/sched-1/participation", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, "m1", tt.svc.gotCallerID)
				assert.Equal(t, domain.ParticipantConfirmed, tt.svc.gotStatus)
			}
		})
	}
}

func TestScheduleController_RefreshRoster(t *testing.T) {
	refreshed := &domain.Schedule{ID: "sched-1", TeamID: "team-a"}

	t.Run("success", func(t *testing.T) {
		svc := &fakeScheduleService{refreshResult: refreshed}
		handler := newScheduleMux(NewScheduleController(testLogger, svc), "l1")
		req := httptest.NewRequest(http.MethodPost, "/schedules/sched-1/roster/refresh", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sched-1", svc.gotScheduleID)
	})

	t.Run("non-leader forbidden", func(t *testing.T) {
		svc := &fakeScheduleService{refreshErr: domain.ErrForbidden}
		handler := newScheduleMux(NewScheduleController(testLogger, svc), "m1")
		req := httptest.NewRequest(http.MethodPost, "/schedules/sched-1/roster/refresh", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}
