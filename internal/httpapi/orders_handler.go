package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oktaviandwip/musalabel-storefront/internal/orders"
)

type OrdersHandler struct {
	api orders.PurchaseAPI
}

func NewOrdersHandler(api orders.PurchaseAPI) *OrdersHandler {
	return &OrdersHandler{api: api}
}

func (h *OrdersHandler) history(r *http.Request) *orders.History {
	sess, _ := sessionFrom(r.Context())
	return orders.NewHistory(h.api, sess.Profile.Email)
}

// List returns grouped purchase cards for one status filter, default
// unpaid.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	status := orders.StatusUnpaid
	if q := r.URL.Query().Get("status"); q != "" {
		parsed, err := orders.ParseStatus(q)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_status", err.Error())
			return
		}
		status = parsed
	}

	purchases, err := h.history(r).Fetch(r.Context(), status)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchases)
}

func (h *OrdersHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.history(r).Counts(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

type TransitionRequestDTO struct {
	CurrentStatus orders.Status `json:"current_status"`
}

func (h *OrdersHandler) transitionRequest(w http.ResponseWriter, r *http.Request) (string, orders.Status, bool) {
	purchaseID := chi.URLParam(r, "purchase_id")
	if purchaseID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "purchase_id is required")
		return "", "", false
	}
	var req TransitionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.CurrentStatus.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_request", "current_status is required")
		return "", "", false
	}
	return purchaseID, req.CurrentStatus, true
}

// Cancel is the buyer's unpaid-order cancel. Confirm-then-render: the
// row disappears only after the next fetch.
func (h *OrdersHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	purchaseID, current, ok := h.transitionRequest(w, r)
	if !ok {
		return
	}
	if err := h.history(r).Cancel(r.Context(), purchaseID, current); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(orders.StatusCancelled)})
}

func (h *OrdersHandler) ConfirmShipped(w http.ResponseWriter, r *http.Request) {
	purchaseID, current, ok := h.transitionRequest(w, r)
	if !ok {
		return
	}
	if err := h.history(r).ConfirmShipped(r.Context(), purchaseID, current); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(orders.StatusShipped)})
}

func (h *OrdersHandler) ConfirmArrived(w http.ResponseWriter, r *http.Request) {
	purchaseID, current, ok := h.transitionRequest(w, r)
	if !ok {
		return
	}
	if err := h.history(r).ConfirmArrived(r.Context(), purchaseID, current); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(orders.StatusCompleted)})
}
