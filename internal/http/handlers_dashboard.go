package httpx

import (
	"net/http"

	"github.com/cryptlocker/cryptlocker-ui-api/internal/service"
)

// DashboardHandlers serves the dashboard summary and the sidebar.
type DashboardHandlers struct {
	Svc  *service.DashboardService
	errs errorResponder
}

// Summary handles GET /api/dashboard.
func (h *DashboardHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Svc.Summary(r.Context(), storedAuth(r))
	if err != nil {
		h.errs.write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// navigationResponse is the body of GET /api/navigation.
type navigationResponse struct {
	Items   []service.NavItem `json:"items"`
	Loading bool              `json:"loading"`
}

// Navigation handles GET /api/navigation. While the profile is unknown the list
// is empty and loading is set, so the client keeps its skeleton instead of hiding links.
func (h *DashboardHandlers) Navigation(w http.ResponseWriter, r *http.Request) {
	state, _ := GetAuthStateFromContext(r.Context())
	if state.Loading || state.User == nil {
		WriteJSON(w, http.StatusOK, navigationResponse{Items: []service.NavItem{}, Loading: true})
		return
	}
	WriteJSON(w, http.StatusOK, navigationResponse{Items: service.Navigation(state.User.RoleSet())})
}
