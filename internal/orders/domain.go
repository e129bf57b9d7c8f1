package orders

import "github.com/oktaviandwip/musalabel-storefront/internal/cart"

// Item is one line inside a purchase record.
type Item struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Size      cart.Size `json:"size"`
	Price     int64     `json:"price"`
	Image     string    `json:"image"`
	Slug      string    `json:"slug"`
}

// Row is one flat purchase row as the backend returns it: purchase
// fields repeated per line item.
type Row struct {
	PurchaseID      string    `json:"purchase_id"`
	InvoiceURL      string    `json:"invoice_url"`
	DeliveryOption  string    `json:"delivery_option"`
	DeliveryAddress string    `json:"delivery_address"`
	Status          Status    `json:"status"`
	Email           string    `json:"email"`
	TotalPrice      int64     `json:"total_price"`
	ProductID       string    `json:"product_id"`
	Name            string    `json:"name"`
	Quantity        int       `json:"quantity"`
	Size            cart.Size `json:"size"`
	Price           int64     `json:"price"`
	Image           string    `json:"image"`
	Slug            string    `json:"slug"`
}

// Purchase is the grouped view: one card per purchase identifier with
// its item rows and a single shared status, tier, address and total.
type Purchase struct {
	PurchaseID      string `json:"purchase_id"`
	Items           []Item `json:"items"`
	InvoiceURL      string `json:"invoice_url"`
	DeliveryOption  string `json:"delivery_option"`
	DeliveryAddress string `json:"delivery_address"`
	Status          Status `json:"status"`
	Email           string `json:"email"`
	TotalPrice      int64  `json:"total_price"`
}

// GroupRows folds flat backend rows into one Purchase per purchase
// identifier, preserving first-seen order.
func GroupRows(rows []Row) []Purchase {
	var out []Purchase
	index := make(map[string]int)

	for _, row := range rows {
		i, seen := index[row.PurchaseID]
		if !seen {
			index[row.PurchaseID] = len(out)
			out = append(out, Purchase{
				PurchaseID:      row.PurchaseID,
				InvoiceURL:      row.InvoiceURL,
				DeliveryOption:  row.DeliveryOption,
				DeliveryAddress: row.DeliveryAddress,
				Status:          row.Status,
				Email:           row.Email,
				TotalPrice:      row.TotalPrice,
			})
			i = len(out) - 1
		}
		out[i].Items = append(out[i].Items, Item{
			ProductID: row.ProductID,
			Name:      row.Name,
			Quantity:  row.Quantity,
			Size:      row.Size,
			Price:     row.Price,
			Image:     row.Image,
			Slug:      row.Slug,
		})
	}

	return out
}
