package cart

import "time"

// Size is one of the fixed clothing sizes the shop sells.
type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

func (s Size) Valid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

// Snapshot is the product data denormalized onto a cart line when the
// item is added. It is a point-in-time copy, not a live reference;
// checkout revalidates against the catalog before submitting.
type Snapshot struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
	Slug  string `json:"slug"`
	Stock int    `json:"stock"`
}

// Line is one (product, size) entry in a user's cart. ID is assigned by
// the backend once the line is persisted and stays empty until then.
type Line struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Quantity  int       `json:"quantity"`
	Size      Size      `json:"size"`
	Snapshot  Snapshot  `json:"snapshot"`
	AddedAt   time.Time `json:"added_at"`
}

// Key identifies a line inside a cart. At most one line may exist per key.
type Key struct {
	ProductID string
	Size      Size
}

func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size}
}

// Subtotal is price times quantity for this line.
func (l Line) Subtotal() int64 {
	return l.Snapshot.Price * int64(l.Quantity)
}
