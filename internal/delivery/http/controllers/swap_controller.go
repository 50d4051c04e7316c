package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"worshipscheduler/internal/delivery/http/helpers"
	"worshipscheduler/internal/delivery/http/middleware"
	"worshipscheduler/internal/domain"
)

// CreateSwapRequestRequest is the request body for POST /swap-requests.
type CreateSwapRequestRequest struct {
	InitiatingScheduleID string `json:"initiating_schedule_id"`
	TargetScheduleID     string `json:"target_schedule_id"`
}

// Validate implements Validator.
func (c CreateSwapRequestRequest) Validate() []string {
	var errs []string
	if c.InitiatingScheduleID == "" {
		errs = append(errs, "initiating_schedule_id is required")
	}
	if c.TargetScheduleID == "" {
		errs = append(errs, "target_schedule_id is required")
	}
	return errs
}

// RespondToSwapRequestRequest is the request body for
// POST /swap-requests/{requestID}/response.
type RespondToSwapRequestRequest struct {
	Response string `json:"response"` // "accepted" or "rejected"
}

// Validate implements Validator.
func (r RespondToSwapRequestRequest) Validate() []string {
	if r.Response != string(domain.SwapAccepted) && r.Response != string(domain.SwapRejected) {
		return []string{`response must be "accepted" or "rejected"`}
	}
	return nil
}

// SwapRequestSuccessResponse is the success envelope for swap request
// endpoints.
type SwapRequestSuccessResponse struct {
	Data  *domain.SwapRequest `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ExpireOrphanedResponse is the response body for
// POST /swap-requests/expire-orphaned.
type ExpireOrphanedResponse struct {
	Expired int64 `json:"expired"`
}

type SwapController struct {
	Logger  *slog.Logger
	Service domain.SwapService
}

func NewSwapController(logger *slog.Logger, svc domain.SwapService) *SwapController {
	return &SwapController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSwapRequest godoc
// @Summary Propose a schedule swap
// @Description Proposes exchanging the team assignments of two schedules. The authenticated user must lead the initiating schedule's team. The target schedule's leader is notified by email (best effort).
// @Tags swap-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateSwapRequestRequest true "Schedule pair"
// @Success 201 {object} controllers.SwapRequestSuccessResponse "data contains the pending swap request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (caller is not the initiating schedule's leader)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (a pending request already exists for this pair)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /swap-requests [post]
func (c *SwapController) CreateSwapRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateSwapRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	created, err := c.Service.CreateSwapRequest(r.Context(), callerID, req.InitiatingScheduleID, req.TargetScheduleID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the schedule's team leader can propose a swap")
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "schedule not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "cannot swap with yourself")
		case errors.Is(err, domain.ErrConflict):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "a pending swap request already exists for these schedules")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// RespondToSwapRequest godoc
// @Summary Accept or reject a swap request
// @Description Resolves a pending swap request. Only the target leader can respond, and only once. On acceptance the two schedules exchange teams and both rosters are regenerated from current membership with every status reset to pending.
// @Tags swap-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path string true "Swap request ID (UUID)"
// @Param body body RespondToSwapRequestRequest true "Response"
// @Success 200 {object} controllers.SwapRequestSuccessResponse "data contains the resolved swap request"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (missing, already resolved, or not addressed to the caller)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (a concurrent response won)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /swap-requests/{requestID}/response [post]
func (c *SwapController) RespondToSwapRequest(w http.ResponseWriter, r *http.Request) {
	requestID := r.PathValue("requestID")
	if requestID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing requestID")
		return
	}
	var req RespondToSwapRequestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	responderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	resolved, err := c.Service.RespondToSwapRequest(r.Context(), responderID, requestID, domain.SwapStatus(req.Response))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "swap request not found")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid response")
		case errors.Is(err, domain.ErrConflict):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "swap request was already resolved")
		case errors.Is(err, domain.ErrInconsistentState):
			// Full detail is already in the server log; the caller gets a
			// generic message.
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "something went wrong, please contact support")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resolved)
}

// ListSwapRequestsSuccessResponse is the success envelope for GET /swap-requests.
type ListSwapRequestsSuccessResponse struct {
	Data  []*domain.SwapRequest `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ListSwapRequests godoc
// @Summary List swap requests for the authenticated leader
// @Description Returns swap requests where the authenticated user is the initiating or the target leader, newest first.
// @Tags swap-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSwapRequestsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /swap-requests [get]
func (c *SwapController) ListSwapRequests(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	requests, err := c.Service.ListSwapRequests(r.Context(), callerID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, requests)
}

// ExpireOrphaned godoc
// @Summary Expire orphaned pending swap requests
// @Description Removes pending swap requests that reference a schedule that no longer exists. Maintenance endpoint.
// @Tags swap-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the number of expired requests"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /swap-requests/expire-orphaned [post]
func (c *SwapController) ExpireOrphaned(w http.ResponseWriter, r *http.Request) {
	_, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	n, err := c.Service.ExpireOrphanedRequests(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ExpireOrphanedResponse{Expired: n})
}
