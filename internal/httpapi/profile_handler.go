package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/oktaviandwip/musalabel-storefront/internal/session"
)

// ProfileAPI writes contact-field updates through to the backend.
type ProfileAPI interface {
	UpdatePhoneAddress(ctx context.Context, p session.Profile) error
}

type ProfileHandler struct {
	api      ProfileAPI
	sessions session.Store
}

func NewProfileHandler(api ProfileAPI, sessions session.Store) *ProfileHandler {
	return &ProfileHandler{api: api, sessions: sessions}
}

type UpdateContactDTO struct {
	PhoneNumber *string `json:"phone_number"`
	Address1    *string `json:"address1"`
	Address2    *string `json:"address2"`
	Address3    *string `json:"address3"`
}

// UpdateContact patches phone and address slots, backend first, then the
// stored session.
func (h *ProfileHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req UpdateContactDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated := sess.Profile
	if req.PhoneNumber != nil {
		updated.PhoneNumber = *req.PhoneNumber
	}
	if req.Address1 != nil {
		updated.Address1 = *req.Address1
	}
	if req.Address2 != nil {
		updated.Address2 = *req.Address2
	}
	if req.Address3 != nil {
		updated.Address3 = *req.Address3
	}

	if err := h.api.UpdatePhoneAddress(r.Context(), updated); err != nil {
		respondDomainError(w, err)
		return
	}

	sess.Profile = updated
	if err := h.sessions.Put(r.Context(), sess); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}
	respondJSON(w, http.StatusOK, sess.Profile)
}
