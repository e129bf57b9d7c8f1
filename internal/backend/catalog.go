package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/catalog"
)

type productRow struct {
	ID          string   `json:"Id"`
	Name        string   `json:"Name"`
	Slug        string   `json:"Slug"`
	Description string   `json:"Description"`
	Price       int64    `json:"Price"`
	Image       []string `json:"Image"`
	Stock       int      `json:"Stock"`
	Size        []string `json:"Size"`
	CreatedAt   string   `json:"Created_at"`
	UpdatedAt   *string  `json:"Updated_at"`
}

func (p productRow) product() catalog.Product {
	sizes := make([]cart.Size, 0, len(p.Size))
	for _, s := range p.Size {
		sizes = append(sizes, cart.Size(s))
	}
	out := catalog.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Image,
		Stock:       p.Stock,
		Sizes:       sizes,
	}
	if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
		out.CreatedAt = t
	}
	if p.UpdatedAt != nil {
		if t, err := time.Parse(time.RFC3339, *p.UpdatedAt); err == nil {
			out.UpdatedAt = &t
		}
	}
	return out
}

func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var rows []productRow
	if err := c.doJSON(ctx, http.MethodGet, "/products/", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.product())
	}
	return out, nil
}

func (c *Client) ProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var row productRow
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+slug, nil, &row); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	p := row.product()
	return &p, nil
}

// CurrentStock reads live stock and price for checkout revalidation. The
// detail endpoint accepts an id as well as a slug.
func (c *Client) CurrentStock(ctx context.Context, productID string) (int, int64, error) {
	p, err := c.ProductBySlug(ctx, productID)
	if err != nil {
		return 0, 0, err
	}
	return p.Stock, p.Price, nil
}

func (c *Client) CreateProduct(ctx context.Context, in catalog.Input, images []catalog.ImageFile) (*catalog.Product, error) {
	return c.writeProduct(ctx, http.MethodPost, "/products/", in, images)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in catalog.Input, images []catalog.ImageFile) (*catalog.Product, error) {
	return c.writeProduct(ctx, http.MethodPatch, "/products/"+id, in, images)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

// writeProduct sends the admin create/update multipart form: text fields
// plus one part per image file.
func (c *Client) writeProduct(ctx context.Context, method, path string, in catalog.Input, images []catalog.ImageFile) (*catalog.Product, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"price":       strconv.FormatInt(in.Price, 10),
		"stock":       strconv.Itoa(in.Stock),
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	for _, s := range in.Sizes {
		if err := form.WriteField("size", string(s)); err != nil {
			return nil, fmt.Errorf("write size field: %w", err)
		}
	}
	for _, img := range images {
		part, err := form.CreateFormFile("image", img.Name)
		if err != nil {
			return nil, fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(img.Content); err != nil {
			return nil, fmt.Errorf("write image part: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("close multipart form: %w", err)
	}

	var row productRow
	if err := c.do(ctx, method, path, form.FormDataContentType(), &buf, &row); err != nil {
		return nil, err
	}
	p := row.product()
	return &p, nil
}
