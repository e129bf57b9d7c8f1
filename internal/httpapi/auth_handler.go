package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/oktaviandwip/musalabel-storefront/internal/auth"
	"github.com/oktaviandwip/musalabel-storefront/internal/backend"
	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/session"
)

type AuthHandler struct {
	service  *auth.Service
	carts    *cart.Manager
	sessions session.Store
}

func NewAuthHandler(service *auth.Service, carts *cart.Manager, sessions session.Store) *AuthHandler {
	return &AuthHandler{service: service, carts: carts, sessions: sessions}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsGoogle bool   `json:"isGoogle"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || (req.Password == "" && !req.IsGoogle) {
		respondError(w, http.StatusBadRequest, "validation_error", "email and password are required")
		return
	}

	sess, err := h.service.Login(r.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
		Google:   req.IsGoogle,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Hydrate the cart right after login, the way the web client did.
	ctx := backend.WithToken(r.Context(), sess.Token)
	if _, err := h.carts.ForUser(ctx, sess.Profile.ID); err != nil {
		respondDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	respondJSON(w, http.StatusOK, sess.Profile)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}
	if err := h.service.Logout(r.Context(), sess.ID); err != nil {
		respondDomainError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type SignupRequestDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "email and password are required")
		return
	}

	if err := h.service.Signup(r.Context(), auth.SignupInput(req)); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

func (h *AuthHandler) SendPIN(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email is required")
		return
	}

	if err := h.service.SendPIN(r.Context(), req.Email); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cooldown": h.service.ResendRemaining(req.Email),
	})
}

type VerifyPINDTO struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

func (h *AuthHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req VerifyPINDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.VerifyPIN(req.Email, req.PIN); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

type ResetPasswordDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "password is required")
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email, req.Password); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
