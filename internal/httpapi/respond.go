package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/oktaviandwip/musalabel-storefront/internal/auth"
	"github.com/oktaviandwip/musalabel-storefront/internal/backend"
	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/catalog"
	"github.com/oktaviandwip/musalabel-storefront/internal/checkout"
	"github.com/oktaviandwip/musalabel-storefront/internal/orders"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": data}); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code}); err != nil {
		log.Printf("failed to encode error response: %v", err)
	}
}

// respondDomainError maps domain sentinel errors onto HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var syncErr *cart.SyncError
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, cart.ErrNoSize),
		errors.Is(err, cart.ErrBadQuantity),
		errors.Is(err, checkout.ErrMissingContact),
		errors.Is(err, checkout.ErrEmptySelection),
		errors.Is(err, checkout.ErrStockChanged),
		errors.Is(err, catalog.ErrEmptyName),
		errors.Is(err, catalog.ErrBadPrice),
		errors.Is(err, catalog.ErrBadStock),
		errors.Is(err, catalog.ErrNoSizes),
		errors.Is(err, auth.ErrPINLength):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, cart.ErrNotInCart), errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, auth.ErrInvalidPIN), errors.Is(err, auth.ErrNoResetInFlight):
		respondError(w, http.StatusUnauthorized, "auth_error", err.Error())
	case errors.Is(err, auth.ErrResendCooldown):
		respondError(w, http.StatusTooManyRequests, "cooldown_active", err.Error())
	case errors.Is(err, orders.ErrIllegalTransition),
		errors.Is(err, checkout.ErrIllegalTransition),
		errors.Is(err, checkout.ErrCompleted):
		respondError(w, http.StatusConflict, "illegal_transition", err.Error())
	case errors.Is(err, checkout.ErrPaymentInit):
		respondError(w, http.StatusBadGateway, "payment_init_error", err.Error())
	case errors.As(err, &syncErr):
		respondError(w, http.StatusBadGateway, "sync_error", err.Error())
	case errors.As(err, &apiErr):
		respondError(w, apiErr.StatusCode, "backend_error", apiErr.Message)
	default:
		log.Printf("unhandled error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
