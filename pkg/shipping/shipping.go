package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Abhraroy/thejwel-sub001/models"
)

// Client creates shipment orders with the shipping partner. Calls are
// best-effort: the caller logs and swallows failures since payment has
// already succeeded by the time a shipment is requested.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether shipping credentials were provided.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

type shipmentItem struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku,omitempty"`
	Units    int     `json:"units"`
	Price    float64 `json:"selling_price"`
	WeightKg float64 `json:"weight"`
}

type shipmentRequest struct {
	OrderID      string         `json:"order_id"`
	OrderDate    string         `json:"order_date"`
	CustomerName string         `json:"billing_customer_name"`
	Email        string         `json:"billing_email"`
	Phone        string         `json:"billing_phone"`
	Address      string         `json:"billing_address"`
	City         string         `json:"billing_city"`
	State        string         `json:"billing_state"`
	Country      string         `json:"billing_country"`
	Pincode      string         `json:"billing_pincode"`
	Items        []shipmentItem `json:"order_items"`
	SubTotal     float64        `json:"sub_total"`
}

// CreateShipment registers a completed order with the shipping partner.
func (c *Client) CreateShipment(ctx context.Context, order models.Order) error {
	if !c.Configured() {
		return fmt.Errorf("shipping partner not configured")
	}

	req := shipmentRequest{
		OrderID:      order.MerchantOrderID,
		OrderDate:    order.CreatedAt.Format("2006-01-02 15:04"),
		CustomerName: order.User.Name,
		Email:        order.User.Email,
		Phone:        order.User.Phone,
		Address:      order.User.Address.Street,
		City:         order.User.Address.City,
		State:        order.User.Address.State,
		Country:      order.User.Address.Country,
		Pincode:      order.User.Address.PostalCode,
		SubTotal:     order.Subtotal,
	}
	for _, it := range order.Items {
		req.Items = append(req.Items, shipmentItem{
			Name:     it.ProductName,
			Units:    it.Quantity,
			Price:    it.UnitPrice,
			WeightKg: it.WeightGrams * float64(it.Quantity) / 1000.0,
		})
	}

	jsonData, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/external/orders/create/adhoc", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to reach shipping partner: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("shipping partner error (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}
