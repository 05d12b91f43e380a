package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Order states reported by the gateway status endpoint.
const (
	StateCompleted = "COMPLETED"
	StateFailed    = "FAILED"
	StatePending   = "PENDING"
)

// Client talks to the hosted checkout API. The gateway issues short-lived
// OAuth access tokens; checkout creation returns a redirect URL the customer
// is sent to, and order status is polled by merchant order id.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	redirectURL  string
	sandbox      bool

	http *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Mode         string // "live" or "sandbox"
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  cfg.RedirectURL,
		sandbox:      cfg.Mode == "sandbox" || cfg.Mode == "dev",
		http:         &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// token returns a cached access token, fetching a fresh one when the cached
// token is within a minute of expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway token error (%d): %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse gateway token response: %v", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("gateway returned empty access token")
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

type checkoutResponse struct {
	OrderID     string `json:"orderId"`
	State       string `json:"state"`
	RedirectURL string `json:"redirectUrl"`
	Error       *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CreateCheckout registers a checkout for the given merchant order id and
// amount (in minor currency units) and returns the hosted payment page URL.
func (c *Client) CreateCheckout(ctx context.Context, merchantOrderID string, amountMinor int64, description string) (string, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"merchantOrderId": merchantOrderID,
		"amount":          amountMinor,
		"test":            c.sandbox,
		"paymentFlow": map[string]interface{}{
			"type":    "PG_CHECKOUT",
			"message": description,
			"merchantUrls": map[string]string{
				"redirectUrl": c.redirectURL + "?merchant_order_id=" + url.QueryEscape(merchantOrderID),
			},
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/checkout/v2/pay", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+tok)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var out checkoutResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gateway error: %s", out.Error.Message)
	}
	if out.RedirectURL == "" {
		return "", fmt.Errorf("gateway returned empty payment URL")
	}

	return out.RedirectURL, nil
}

type statusResponse struct {
	MerchantOrderID string `json:"merchantOrderId"`
	State           string `json:"state"`
	Error           *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// OrderStatus polls the gateway for the current state of a merchant order.
// Returns one of StateCompleted, StateFailed or StatePending.
func (c *Client) OrderStatus(ctx context.Context, merchantOrderID string) (string, error) {
	tok, err := c.token(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/checkout/v2/order/"+url.PathEscape(merchantOrderID)+"/status", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "O-Bearer "+tok)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var out statusResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("gateway error: %s", out.Error.Message)
	}

	switch out.State {
	case StateCompleted, StateFailed:
		return out.State, nil
	default:
		return StatePending, nil
	}
}
