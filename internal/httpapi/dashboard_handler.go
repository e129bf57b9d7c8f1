package httpapi

import (
	"net/http"

	"github.com/oktaviandwip/musalabel-storefront/internal/dashboard"
)

type DashboardHandler struct {
	service *dashboard.Service
}

func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Series serves the income or quantity chart, selected by kind.
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("kind")
	interval := dashboard.Interval(r.URL.Query().Get("interval"))
	if !interval.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_request", "interval must be daily, week or month")
		return
	}

	switch kind {
	case "income":
		points, err := h.service.Income(r.Context(), interval)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, points)
	case "quantity":
		points, err := h.service.Quantity(r.Context(), interval)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, points)
	default:
		respondError(w, http.StatusBadRequest, "invalid_request", "kind must be income or quantity")
	}
}
