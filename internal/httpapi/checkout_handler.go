package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/catalog"
	"github.com/oktaviandwip/musalabel-storefront/internal/checkout"
)

type CheckoutHandler struct {
	checkouts *checkout.Manager
	carts     *cart.Manager
	catalog   *catalog.Service
}

func NewCheckoutHandler(checkouts *checkout.Manager, carts *cart.Manager, catalog *catalog.Service) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts, carts: carts, catalog: catalog}
}

type DraftViewDTO struct {
	Status       checkout.Status `json:"status"`
	Items        []cart.Line     `json:"items"`
	Tier         checkout.Tier   `json:"delivery_option"`
	Address      string          `json:"delivery_address"`
	Phone        string          `json:"phone_number"`
	Subtotal     int64           `json:"subtotal"`
	DeliveryCost int64           `json:"delivery_cost"`
	Total        int64           `json:"total_price"`
	InvoiceURL   string          `json:"invoice_url,omitempty"`
}

func draftView(s *checkout.Session) DraftViewDTO {
	d := s.Draft()
	view := DraftViewDTO{
		Status:       s.Status(),
		Items:        d.Items,
		Tier:         d.Tier,
		Address:      d.Address,
		Phone:        d.Phone,
		Subtotal:     d.Subtotal(),
		DeliveryCost: d.DeliveryCost(),
		Total:        d.Total(),
	}
	if inv := s.Invoice(); inv != nil {
		view.InvoiceURL = inv.URL
	}
	return view
}

// Begin opens a checkout over the cart's current selection. Contact
// fields default from the profile, delivery defaults to Regular.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())

	st, err := h.carts.ForUser(r.Context(), sess.Profile.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	s, err := h.checkouts.Begin(sess.Profile.ID, sess.Profile.Email, st)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if s.Status() == checkout.StatusDrafting {
		_ = s.SetContact(sess.Profile.DefaultAddress(), sess.Profile.PhoneNumber)
	}
	respondJSON(w, http.StatusCreated, draftView(s))
}

type BuyNowRequestDTO struct {
	Slug     string    `json:"slug"`
	Size     cart.Size `json:"size"`
	Quantity int       `json:"quantity"`
}

// BuyNow opens a singleton checkout straight from the product page,
// skipping the cart.
func (h *CheckoutHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())

	var req BuyNowRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Size.Valid() {
		respondDomainError(w, cart.ErrNoSize)
		return
	}
	if req.Quantity <= 0 {
		respondDomainError(w, cart.ErrBadQuantity)
		return
	}

	product, err := h.catalog.BySlug(r.Context(), req.Slug)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	line := cart.Line{
		ProductID: product.ID,
		UserID:    sess.Profile.ID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Snapshot:  product.Snapshot(),
	}
	s := h.checkouts.BeginBuyNow(sess.Profile.ID, sess.Profile.Email, line)
	if s.Status() == checkout.StatusDrafting {
		_ = s.SetContact(sess.Profile.DefaultAddress(), sess.Profile.PhoneNumber)
	}
	respondJSON(w, http.StatusCreated, draftView(s))
}

func (h *CheckoutHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	s, ok := h.checkouts.Current(sess.Profile.ID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "no checkout in progress")
		return
	}
	respondJSON(w, http.StatusOK, draftView(s))
}

type UpdateDraftDTO struct {
	Tier    *checkout.Tier `json:"delivery_option"`
	Address *string        `json:"delivery_address"`
	Phone   *string        `json:"phone_number"`
}

func (h *CheckoutHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	s, ok := h.checkouts.Current(sess.Profile.ID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "no checkout in progress")
		return
	}

	var req UpdateDraftDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Tier != nil {
		if err := s.SetTier(*req.Tier); err != nil {
			respondDomainError(w, err)
			return
		}
	}
	if req.Address != nil || req.Phone != nil {
		d := s.Draft()
		address, phone := d.Address, d.Phone
		if req.Address != nil {
			address = *req.Address
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := s.SetContact(address, phone); err != nil {
			respondDomainError(w, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, draftView(s))
}

// Submit runs the invoice and purchase-record phases. On success the
// selection is cleared and the client is pointed at the order history.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	s, ok := h.checkouts.Current(sess.Profile.ID)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "no checkout in progress")
		return
	}

	if err := s.Submit(r.Context()); err != nil {
		respondDomainError(w, err)
		return
	}

	h.checkouts.Abandon(sess.Profile.ID)
	view := draftView(s)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      view.Status,
		"invoice_url": view.InvoiceURL,
		"redirect":    "/products/orders",
	})
}

// Abandon destroys the in-progress draft, e.g. on navigation away.
func (h *CheckoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	h.checkouts.Abandon(sess.Profile.ID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}
