package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/catalog"
)

type CartHandler struct {
	carts   *cart.Manager
	catalog *catalog.Service
}

func NewCartHandler(carts *cart.Manager, catalog *catalog.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

type CartViewDTO struct {
	Lines    []cart.Line `json:"lines"`
	Selected []cart.Line `json:"selected"`
	Total    int64       `json:"selected_total"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())
	st, err := h.carts.ForUser(r.Context(), sess.Profile.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, CartViewDTO{
		Lines:    st.Lines(),
		Selected: st.Selected(),
		Total:    st.SelectedTotal(),
	})
}

type AddItemRequestDTO struct {
	Slug     string    `json:"slug"`
	Size     cart.Size `json:"size"`
	Quantity int       `json:"quantity"`
}

// AddItem resolves the product, then adds or merges the (product, size)
// line. A missing size never reaches the backend.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Size == "" {
		respondDomainError(w, cart.ErrNoSize)
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.BySlug(r.Context(), req.Slug)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if req.Quantity > product.Stock {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity exceeds available stock")
		return
	}

	st, err := h.carts.ForUser(r.Context(), sess.Profile.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := st.AddOrMerge(r.Context(), product.ID, product.Snapshot(), req.Size, req.Quantity); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, st.Lines())
}

type RemoveItemRequestDTO struct {
	ProductID string    `json:"product_id"`
	Size      cart.Size `json:"size"`
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())

	var req RemoveItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	st, err := h.carts.ForUser(r.Context(), sess.Profile.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := st.Remove(r.Context(), req.ProductID, req.Size); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st.Lines())
}

type ToggleSelectRequestDTO struct {
	ProductID string    `json:"product_id"`
	Size      cart.Size `json:"size"`
}

func (h *CartHandler) ToggleSelect(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())

	var req ToggleSelectRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	st, err := h.carts.ForUser(r.Context(), sess.Profile.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := st.ToggleSelect(req.ProductID, req.Size); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, st.Selected())
}

func (h *CartHandler) SelectAll(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFrom(r.Context())

	st, err := h.carts.ForUser(r.Context(), sess.Profile.ID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	st.SelectAll()
	respondJSON(w, http.StatusOK, st.Selected())
}
