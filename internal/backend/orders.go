package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/oktaviandwip/musalabel-storefront/internal/checkout"
	"github.com/oktaviandwip/musalabel-storefront/internal/dashboard"
	"github.com/oktaviandwip/musalabel-storefront/internal/orders"
)

// orderRow is a cart line as the backend's order endpoint returns it.
type orderRow struct {
	ID          string `json:"Id"`
	UserID      string `json:"User_id"`
	ProductID   string `json:"Product_id"`
	Quantity    int    `json:"Quantity"`
	Size        string `json:"Size"`
	Name        string `json:"Name"`
	Slug        string `json:"Slug"`
	Description string `json:"Description"`
	Price       int64  `json:"Price"`
	Image       string `json:"Image"`
	Stock       int    `json:"Stock"`
}

func (r orderRow) line() cart.Line {
	return cart.Line{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Quantity:  r.Quantity,
		Size:      cart.Size(r.Size),
		Snapshot: cart.Snapshot{
			Name:  r.Name,
			Price: r.Price,
			Image: r.Image,
			Slug:  r.Slug,
			Stock: r.Stock,
		},
	}
}

// Hydrate loads the user's cart rows after login.
func (c *Client) Hydrate(ctx context.Context, userID string) ([]cart.Line, error) {
	var rows []orderRow
	if err := c.doJSON(ctx, http.MethodGet, "/orders/"+userID, nil, &rows); err != nil {
		return nil, err
	}
	lines := make([]cart.Line, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.line())
	}
	return lines, nil
}

// Create persists a new cart line and returns the assigned identifier.
func (c *Client) Create(ctx context.Context, line cart.Line) (string, error) {
	body := struct {
		UserID    string `json:"user_id"`
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
		Size      string `json:"size"`
		Status    string `json:"status"`
	}{line.UserID, line.ProductID, line.Quantity, string(line.Size), "cart"}

	var data struct {
		ID string `json:"Id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/orders/", body, &data); err != nil {
		return "", err
	}
	return data.ID, nil
}

// Update replaces a cart line, carrying the merged quantity.
func (c *Client) Update(ctx context.Context, line cart.Line) error {
	body := struct {
		ID        string `json:"Id"`
		UserID    string `json:"User_id"`
		ProductID string `json:"Product_id"`
		Quantity  int    `json:"Quantity"`
		Size      string `json:"Size"`
	}{line.ID, line.UserID, line.ProductID, line.Quantity, string(line.Size)}

	return c.doJSON(ctx, http.MethodPatch, "/orders/", body, nil)
}

// Delete removes the cart line keyed on (product, user, size).
func (c *Client) Delete(ctx context.Context, userID, productID string, size cart.Size) error {
	body := struct {
		ProductID string `json:"product_id"`
		UserID    string `json:"user_id"`
		Size      string `json:"size"`
	}{productID, userID, string(size)}

	return c.doJSON(ctx, http.MethodDelete, "/orders/", body, nil)
}

// CreateInvoice asks the backend to open a payment-gateway invoice.
func (c *Client) CreateInvoice(ctx context.Context, req checkout.InvoiceRequest) (*checkout.Invoice, error) {
	body := struct {
		Amount             int64  `json:"amount"`
		PayerEmail         string `json:"payerEmail"`
		Description        string `json:"description"`
		SuccessRedirectURL string `json:"successRedirectURL"`
		FailureRedirectURL string `json:"failureRedirectURL"`
	}{req.Amount, req.PayerEmail, req.Description, req.SuccessRedirectURL, req.FailureRedirectURL}

	var data struct {
		InvoiceURL string `json:"invoice_url"`
		ExternalID string `json:"external_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/orders/payment", body, &data); err != nil {
		return nil, err
	}
	return &checkout.Invoice{URL: data.InvoiceURL, ExternalID: data.ExternalID}, nil
}

// SubmitPurchase records the purchase: an update when the selected lines
// were already persisted, a create for buy-now lines.
func (c *Client) SubmitPurchase(ctx context.Context, sub checkout.PurchaseSubmission) error {
	body := struct {
		ID              []string `json:"id"`
		UserID          string   `json:"user_id,omitempty"`
		ProductID       string   `json:"product_id,omitempty"`
		Quantity        int      `json:"quantity,omitempty"`
		Size            string   `json:"size,omitempty"`
		Status          string   `json:"status"`
		PurchaseID      string   `json:"purchase_id"`
		InvoiceURL      string   `json:"invoice_url"`
		DeliveryOption  string   `json:"delivery_option"`
		DeliveryAddress string   `json:"delivery_address"`
		TotalPrice      int64    `json:"total_price"`
	}{
		ID:              sub.LineIDs,
		Status:          sub.Status,
		PurchaseID:      sub.PurchaseID,
		InvoiceURL:      sub.InvoiceURL,
		DeliveryOption:  string(sub.DeliveryOption),
		DeliveryAddress: sub.DeliveryAddress,
		TotalPrice:      sub.TotalPrice,
	}
	if sub.Create {
		body.UserID = sub.UserID
		body.ProductID = sub.ProductID
		body.Quantity = sub.Quantity
		body.Size = string(sub.Size)
	}

	return c.doJSON(ctx, http.MethodPost, "/orders/purchase", body, nil)
}

// purchaseRow is a flat purchase line as the backend returns it.
type purchaseRow struct {
	PurchaseID      string `json:"Purchase_id"`
	InvoiceURL      string `json:"Invoice_url"`
	DeliveryOption  string `json:"Delivery_option"`
	DeliveryAddress string `json:"Delivery_address"`
	Status          string `json:"Status"`
	Email           string `json:"Email"`
	TotalPrice      int64  `json:"Total_price"`
	ProductID       string `json:"Product_id"`
	Name            string `json:"Name"`
	Quantity        int    `json:"Quantity"`
	Size            string `json:"Size"`
	Price           int64  `json:"Price"`
	Image           string `json:"Image"`
	Slug            string `json:"Slug"`
}

func (r purchaseRow) row() orders.Row {
	return orders.Row{
		PurchaseID:      r.PurchaseID,
		InvoiceURL:      r.InvoiceURL,
		DeliveryOption:  r.DeliveryOption,
		DeliveryAddress: r.DeliveryAddress,
		Status:          orders.Status(r.Status),
		Email:           r.Email,
		TotalPrice:      r.TotalPrice,
		ProductID:       r.ProductID,
		Name:            r.Name,
		Quantity:        r.Quantity,
		Size:            cart.Size(r.Size),
		Price:           r.Price,
		Image:           r.Image,
		Slug:            r.Slug,
	}
}

func (c *Client) Purchases(ctx context.Context, email string, status orders.Status) ([]orders.Row, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("status", string(status))

	var rows []purchaseRow
	if err := c.doJSON(ctx, http.MethodGet, "/orders/purchase?"+query.Encode(), nil, &rows); err != nil {
		return nil, err
	}
	out := make([]orders.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.row())
	}
	return out, nil
}

func (c *Client) PurchaseCounts(ctx context.Context, email string) (map[orders.Status]int, error) {
	query := url.Values{}
	query.Set("email", email)

	var data map[string]int
	if err := c.doJSON(ctx, http.MethodGet, "/orders/purchase-count?"+query.Encode(), nil, &data); err != nil {
		return nil, err
	}
	counts := make(map[orders.Status]int, len(data))
	for k, v := range data {
		counts[orders.Status(k)] = v
	}
	return counts, nil
}

func (c *Client) UpdatePurchaseStatus(ctx context.Context, purchaseID string, status orders.Status) error {
	body := struct {
		Status     string `json:"status"`
		PurchaseID string `json:"purchase_id"`
	}{string(status), purchaseID}

	return c.doJSON(ctx, http.MethodPatch, "/orders/purchase-status", body, nil)
}

func (c *Client) IncomeSeries(ctx context.Context, interval dashboard.Interval) ([]dashboard.IncomePoint, error) {
	var points []dashboard.IncomePoint
	if err := c.doJSON(ctx, http.MethodGet, dashboardPath("income", interval), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) QuantitySeries(ctx context.Context, interval dashboard.Interval) ([]dashboard.QuantityPoint, error) {
	var points []dashboard.QuantityPoint
	if err := c.doJSON(ctx, http.MethodGet, dashboardPath("quantity", interval), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func dashboardPath(kind string, interval dashboard.Interval) string {
	return fmt.Sprintf("/orders/dashboard?kind=%s&interval=%s", kind, interval)
}
