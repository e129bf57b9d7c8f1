package checkout

import (
	"strings"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
)

// Draft is the priced, shippable order derived from the selected cart
// lines and a delivery choice. It is computed, never stored.
type Draft struct {
	Items      []cart.Line
	Tier       Tier
	Address    string
	Phone      string
	PayerEmail string
}

// Subtotal is the sum of price times quantity over the selected items.
func (d *Draft) Subtotal() int64 {
	var sum int64
	for _, item := range d.Items {
		sum += item.Subtotal()
	}
	return sum
}

func (d *Draft) DeliveryCost() int64 {
	return d.Tier.Cost()
}

// Total is the final payable amount: subtotal plus delivery cost.
func (d *Draft) Total() int64 {
	return d.Subtotal() + d.DeliveryCost()
}

// Description builds the human-readable invoice description from the
// selected item names.
func (d *Draft) Description() string {
	names := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		names = append(names, item.Snapshot.Name)
	}
	return "Invoice for " + strings.Join(names, ", ") + " purchase"
}
