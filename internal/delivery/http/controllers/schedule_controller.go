package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"worshipscheduler/internal/delivery/http/helpers"
	"worshipscheduler/internal/delivery/http/middleware"
	"worshipscheduler/internal/domain"
)

// CreateScheduleRequest is the request body for POST /schedules.
type CreateScheduleRequest struct {
	TeamID      string    `json:"team_id"`
	ServiceDate time.Time `json:"service_date"`
}

// Validate implements Validator.
func (c CreateScheduleRequest) Validate() []string {
	var errs []string
	if c.TeamID == "" {
		errs = append(errs, "team_id is required")
	}
	if c.ServiceDate.IsZero() {
		errs = append(errs, "service_date is required")
	}
	return errs
}

// SetParticipationRequest is the request body for
// PATCH /schedules/{scheduleID}/participation.
type SetParticipationRequest struct {
	Status string `json:"status"` // "confirmed" or "declined"
}

// Validate implements Validator.
func (s SetParticipationRequest) Validate() []string {
	if s.Status != string(domain.ParticipantConfirmed) && s.Status != string(domain.ParticipantDeclined) {
		return []string{`status must be "confirmed" or "declined"`}
	}
	return nil
}

// ScheduleSuccessResponse is the success envelope for single-schedule
// endpoints.
type ScheduleSuccessResponse struct {
	Data  *domain.Schedule  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ScheduleListSuccessResponse is the success envelope for schedule list
// endpoints.
type ScheduleListSuccessResponse struct {
	Data  []*domain.Schedule `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type ScheduleController struct {
	Logger  *slog.Logger
	Service domain.ScheduleService
}

func NewScheduleController(logger *slog.Logger, svc domain.ScheduleService) *ScheduleController {
	return &ScheduleController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSchedule godoc
// @Summary Schedule a team for a service date
// @Description Creates a schedule assigning a team to a date and generates its roster from the team's current members, all pending. Only the team's leader can create its schedules.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateScheduleRequest true "Team and date"
// @Success 201 {object} controllers.ScheduleSuccessResponse "data contains the created schedule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	schedule, err := c.Service.CreateSchedule(r.Context(), callerID, req.TeamID, req.ServiceDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the team leader can schedule this team")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "team not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, schedule)
}

// ListSchedules godoc
// @Summary List all schedules
// @Description Returns all schedules, each resolved with its team name and roster. No pagination at this scale.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ScheduleListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules [get]
func (c *ScheduleController) ListSchedules(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	schedules, err := c.Service.ListSchedules(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedules)
}

// ListSwapCandidates godoc
// @Summary List schedules eligible as swap targets
// @Description Returns schedules dated today or later, excluding the given schedule. The caller must lead the schedule's team.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param scheduleID path string true "Initiating schedule ID (UUID)"
// @Success 200 {object} controllers.ScheduleListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{scheduleID}/swap-candidates [get]
func (c *ScheduleController) ListSwapCandidates(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("scheduleID")
	if scheduleID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing scheduleID")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	candidates, err := c.Service.ListSwapCandidates(r.Context(), callerID, scheduleID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "schedule not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, candidates)
}

// SetParticipation godoc
// @Summary Confirm or decline own participation
// @Description Updates the authenticated member's status on a schedule roster.
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param scheduleID path string true "Schedule ID (UUID)"
// @Param body body SetParticipationRequest true "New status"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (caller is not on this roster)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{scheduleID}/participation [patch]
func (c *ScheduleController) SetParticipation(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("scheduleID")
	if scheduleID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing scheduleID")
		return
	}
	var req SetParticipationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	err := c.Service.SetParticipation(r.Context(), callerID, scheduleID, domain.ParticipantStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "you are not on this schedule's roster")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid status")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshRoster godoc
// @Summary Regenerate a schedule's roster
// @Description Replaces the roster with the team's current members, resetting every status to pending. Only the team leader can refresh.
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param scheduleID path string true "Schedule ID (UUID)"
// @Success 200 {object} controllers.ScheduleSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schedules/{scheduleID}/roster/refresh [post]
func (c *ScheduleController) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	scheduleID := r.PathValue("scheduleID")
	if scheduleID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing scheduleID")
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	schedule, err := c.Service.RefreshRoster(r.Context(), callerID, scheduleID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the team leader can refresh the roster")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "schedule not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedule)
}
