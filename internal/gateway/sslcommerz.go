package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/config"
)

const (
	sandboxSessionURL = "https://sandbox.sslcommerz.com/gwprocess/v4/api.php"
	liveSessionURL    = "https://securepay.sslcommerz.com/gwprocess/v4/api.php"
)

// SessionRequest carries everything the gateway needs to build a hosted
// checkout session for one transaction.
type SessionRequest struct {
	Amount        float64
	Currency      string
	TransactionID string
	ProductName   string
	SuccessURL    string
	FailURL       string
	CancelURL     string
	IPNURL        string
}

// Client creates hosted checkout sessions. The lone implementation talks to
// SSLCommerz; tests substitute their own.
type Client interface {
	CreateSession(req SessionRequest) (redirectURL string, err error)
}

type sslcommerzClient struct {
	storeID       string
	storePassword string
	sessionURL    string
	httpClient    *http.Client
}

func NewSSLCommerzClient(cfg *config.Config) Client {
	sessionURL := liveSessionURL
	if cfg.Gateway.Sandbox {
		sessionURL = sandboxSessionURL
	}
	return &sslcommerzClient{
		storeID:       cfg.Gateway.StoreID,
		storePassword: cfg.Gateway.StorePassword,
		sessionURL:    sessionURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

type sessionResponse struct {
	Status         string `json:"status"`
	FailedReason   string `json:"failedreason"`
	GatewayPageURL string `json:"GatewayPageURL"`
}

func (c *sslcommerzClient) CreateSession(req SessionRequest) (string, error) {
	form := url.Values{}
	form.Set("store_id", c.storeID)
	form.Set("store_passwd", c.storePassword)
	form.Set("total_amount", fmt.Sprintf("%.2f", req.Amount))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.TransactionID)
	form.Set("success_url", req.SuccessURL)
	form.Set("fail_url", req.FailURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("ipn_url", req.IPNURL)
	form.Set("product_name", req.ProductName)
	form.Set("product_category", "Subscription")
	form.Set("product_profile", "general")
	form.Set("shipping_method", "NO")
	form.Set("cus_name", "N/A")
	form.Set("cus_email", "N/A")
	form.Set("cus_add1", "Dhaka")
	form.Set("cus_city", "Dhaka")
	form.Set("cus_country", "Bangladesh")
	form.Set("cus_phone", "N/A")

	resp, err := c.httpClient.Post(c.sessionURL, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		log.Error().Err(err).Str("tran_id", req.TransactionID).Msg("SSLCommerz session request failed")
		return "", fmt.Errorf("sslcommerz session request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sslcommerz session request: unexpected status %d", resp.StatusCode)
	}

	var session sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("sslcommerz session response decode: %w", err)
	}

	if session.Status != "SUCCESS" || session.GatewayPageURL == "" {
		log.Error().Str("tran_id", req.TransactionID).Str("reason", session.FailedReason).Msg("SSLCommerz rejected session")
		return "", fmt.Errorf("sslcommerz rejected session: %s", session.FailedReason)
	}

	return session.GatewayPageURL, nil
}
