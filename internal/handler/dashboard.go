package handler

import (
	"net/http"

	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/middleware"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/internal/service"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/apierror"
	"github.com/brunonatanaelsr/assist-move-assist-sub004/pkg/response"
)

// DashboardHandler serves the role-specific dashboard.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats handles GET /api/v1/dashboard/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetTokenDataFromContext(r.Context())
	if principal == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	stats, err := h.service.Stats(r.Context(), principal.Role)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load dashboard stats"))
		return
	}
	response.OK(w, stats)
}

// QuickAccess handles GET /api/v1/dashboard/quick-access
func (h *DashboardHandler) QuickAccess(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetTokenDataFromContext(r.Context())
	if principal == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	items, err := h.service.QuickAccess(r.Context(), principal.Role)
	if err != nil {
		response.Error(w, apierror.InternalError("failed to load quick access"))
		return
	}
	response.OK(w, items)
}
