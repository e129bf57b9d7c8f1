package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
)

// Product is a catalog entry as the backend stores it.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	Images      []string    `json:"images"`
	Stock       int         `json:"stock"`
	Sizes       []cart.Size `json:"sizes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at"`
}

// Snapshot denormalizes the product onto a cart line at add time.
func (p Product) Snapshot() cart.Snapshot {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return cart.Snapshot{
		Name:  p.Name,
		Price: p.Price,
		Image: image,
		Slug:  p.Slug,
		Stock: p.Stock,
	}
}

// Input is the admin-facing create/update payload. Images travel as
// multipart file parts next to the form fields.
type Input struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	Sizes       []cart.Size
}

type ImageFile struct {
	Name    string
	Content []byte
}

var (
	ErrEmptyName = errors.New("product name must not be empty")
	ErrBadPrice  = errors.New("product price must be positive")
	ErrBadStock  = errors.New("product stock must not be negative")
	ErrNoSizes   = errors.New("product needs at least one size")
	ErrNotFound  = errors.New("product not found")
)

func (in Input) validate() error {
	if in.Name == "" {
		return ErrEmptyName
	}
	if in.Price <= 0 {
		return ErrBadPrice
	}
	if in.Stock < 0 {
		return ErrBadStock
	}
	if len(in.Sizes) == 0 {
		return ErrNoSizes
	}
	for _, s := range in.Sizes {
		if !s.Valid() {
			return fmt.Errorf("unknown size %q", s)
		}
	}
	return nil
}

// API is the catalog slice of the backend.
type API interface {
	Products(ctx context.Context) ([]Product, error)
	ProductBySlug(ctx context.Context, slug string) (*Product, error)
	CreateProduct(ctx context.Context, in Input, images []ImageFile) (*Product, error)
	UpdateProduct(ctx context.Context, id string, in Input, images []ImageFile) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Service validates admin input and passes catalog reads through.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.api.Products(ctx)
}

func (s *Service) BySlug(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	return s.api.ProductBySlug(ctx, slug)
}

func (s *Service) Create(ctx context.Context, in Input, images []ImageFile) (*Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.api.CreateProduct(ctx, in, images)
}

func (s *Service) Update(ctx context.Context, id string, in Input, images []ImageFile) (*Product, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.api.UpdateProduct(ctx, id, in, images)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}
	return s.api.DeleteProduct(ctx, id)
}
