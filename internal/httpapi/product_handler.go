package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalog *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := h.catalog.BySlug(r.Context(), slug)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

const maxUploadSize = 10 << 20 // 10MB

// parseProductForm reads the admin multipart form: text fields plus any
// number of image parts.
func parseProductForm(r *http.Request) (catalog.Input, []catalog.ImageFile, error) {
	var in catalog.Input
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return in, nil, err
	}

	in.Name = r.FormValue("name")
	in.Description = r.FormValue("description")
	in.Price, _ = strconv.ParseInt(r.FormValue("price"), 10, 64)
	in.Stock, _ = strconv.Atoi(r.FormValue("stock"))
	for _, s := range r.MultipartForm.Value["size"] {
		in.Sizes = append(in.Sizes, cart.Size(s))
	}

	var images []catalog.ImageFile
	for _, header := range r.MultipartForm.File["image"] {
		f, err := header.Open()
		if err != nil {
			return in, nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return in, nil, err
		}
		images = append(images, catalog.ImageFile{Name: header.Filename, Content: content})
	}
	return in, images, nil
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, images, err := parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	product, err := h.catalog.Create(r.Context(), in, images)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in, images, err := parseProductForm(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	product, err := h.catalog.Update(r.Context(), id, in, images)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.catalog.Delete(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
