package handler

import (
	"errors"
	"net/http"

	"github.com/autocare360/autocare-go/internal/middleware"
	"github.com/autocare360/autocare-go/internal/service"
)

// DashboardHandler handles HTTP requests for the dashboard views.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// HandleOverview handles GET /api/dashboard requests.
func (h *DashboardHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Access token required"))
		return
	}

	resp, err := h.service.Overview(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleVehicle handles GET /api/dashboard/vehicle requests.
func (h *DashboardHandler) HandleVehicle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Access token required"))
		return
	}

	record, err := h.service.Vehicle(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// HandleProfile handles GET /api/dashboard/profile requests.
func (h *DashboardHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.AuthUserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Access token required"))
		return
	}

	profile, err := h.service.Profile(r.Context(), user.ID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrVehicleNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse("Internal server error"))
}
