package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"worshipscheduler/internal/delivery/http/controllers"
	"worshipscheduler/internal/delivery/http/middleware"
	"worshipscheduler/internal/domain"

	_ "worshipscheduler/docs"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	scheduleController *controllers.ScheduleController,
	swapController *controllers.SwapController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Schedules
	mux.HandleFunc("POST /schedules", auth(scheduleController.CreateSchedule))
	mux.HandleFunc("GET /schedules", auth(scheduleController.ListSchedules))
	mux.HandleFunc("GET /schedules/{scheduleID}/swap-candidates", auth(scheduleController.ListSwapCandidates))
	mux.HandleFunc("PATCH /schedules/{scheduleID}/participation", auth(scheduleController.SetParticipation))
	mux.HandleFunc("POST /schedules/{scheduleID}/roster/refresh", auth(scheduleController.RefreshRoster))

	// Swap requests
	mux.HandleFunc("POST /swap-requests", auth(swapController.CreateSwapRequest))
	mux.HandleFunc("GET /swap-requests", auth(swapController.ListSwapRequests))
	mux.HandleFunc("POST /swap-requests/{requestID}/response", auth(swapController.RespondToSwapRequest))
	mux.HandleFunc("POST /swap-requests/expire-orphaned", auth(swapController.ExpireOrphaned))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
