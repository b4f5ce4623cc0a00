package pesapal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports"

	"github.com/rs/zerolog"
)

const (
	pathRequestToken     = "/api/Auth/RequestToken"
	pathRegisterIPN      = "/api/URLSetup/RegisterIPN"
	pathGetIPNList       = "/api/URLSetup/GetIpnList"
	pathSubmitOrder      = "/api/Transactions/SubmitOrderRequest"
	pathGetTxStatus      = "/api/Transactions/GetTransactionStatus"
	defaultTokenLifetime = 5 * time.Minute
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.Gateway against the PesaPal v3 REST API.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     HTTPClient
	log            zerolog.Logger
}

// NewClient creates a gateway client. baseURL selects sandbox vs
// production.
func NewClient(baseURL, consumerKey, consumerSecret string, httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient:     httpClient,
		log:            log,
	}
}

// RequestToken exchanges consumer credentials for a bearer token. The
// gateway's stated expiry is kept on the credential; callers apply their
// own safety margin.
func (c *Client) RequestToken(ctx context.Context) (*domain.Credential, error) {
	body := map[string]string{
		"consumer_key":    c.consumerKey,
		"consumer_secret": c.consumerSecret,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, pathRequestToken, "", body, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &RequestError{Endpoint: pathRequestToken, StatusCode: http.StatusOK, Message: resp.Error.Message, Payload: resp.Error}
	}
	if resp.Token == "" {
		return nil, &RequestError{Endpoint: pathRequestToken, StatusCode: http.StatusOK, Message: "token not found in response", Payload: resp}
	}

	expiresAt := time.Now().Add(defaultTokenLifetime)
	if t, err := time.Parse(time.RFC3339, resp.ExpiryDate); err == nil {
		expiresAt = t
	}

	c.log.Debug().Time("expires_at", expiresAt).Msg("pesapal: access token obtained")

	return &domain.Credential{Token: resp.Token, ExpiresAt: expiresAt}, nil
}

// RegisterIPN registers the callback URL as a GET-delivered IPN endpoint.
// A conflict or an "already registered" message maps to
// ports.ErrChannelAlreadyRegistered so the caller can fall back to lookup.
func (c *Client) RegisterIPN(ctx context.Context, token, callbackURL string) (*domain.NotificationChannel, error) {
	body := map[string]string{
		"url":                   callbackURL,
		"ipn_notification_type": "GET",
	}

	var resp ipnRegistration
	if err := c.do(ctx, http.MethodPost, pathRegisterIPN, token, body, &resp); err != nil {
		if isAlreadyRegistered(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrChannelAlreadyRegistered, callbackURL)
		}
		return nil, err
	}
	if resp.Error != nil {
		if strings.Contains(strings.ToLower(resp.Error.Message), "already registered") {
			return nil, fmt.Errorf("%w: %s", ports.ErrChannelAlreadyRegistered, callbackURL)
		}
		return nil, &RequestError{Endpoint: pathRegisterIPN, StatusCode: http.StatusOK, Message: resp.Error.Message, Payload: resp.Error}
	}
	if resp.IPNID == "" {
		return nil, &RequestError{Endpoint: pathRegisterIPN, StatusCode: http.StatusOK, Message: "ipn_id not found in response", Payload: resp}
	}

	return &domain.NotificationChannel{ID: resp.IPNID, CallbackURL: resp.URL}, nil
}

// ListIPNs returns all IPN endpoints registered for this merchant.
func (c *Client) ListIPNs(ctx context.Context, token string) ([]domain.NotificationChannel, error) {
	var resp []ipnRegistration
	if err := c.do(ctx, http.MethodGet, pathGetIPNList, token, nil, &resp); err != nil {
		return nil, err
	}

	channels := make([]domain.NotificationChannel, 0, len(resp))
	for _, r := range resp {
		channels = append(channels, domain.NotificationChannel{ID: r.IPNID, CallbackURL: r.URL})
	}
	return channels, nil
}

// SubmitOrder submits a payment order and returns the tracking id,
// merchant reference, and redirect URL from the gateway.
func (c *Client) SubmitOrder(ctx context.Context, token string, order *domain.PaymentOrder) (*domain.OrderReceipt, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, pathSubmitOrder, token, order, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &RequestError{Endpoint: pathSubmitOrder, StatusCode: http.StatusOK, Message: resp.Error.Message, Payload: resp.Error}
	}
	if resp.OrderTrackingID == "" {
		return nil, &RequestError{Endpoint: pathSubmitOrder, StatusCode: http.StatusOK, Message: "order_tracking_id not found in response", Payload: resp}
	}

	c.log.Info().
		Str("order_tracking_id", resp.OrderTrackingID).
		Str("merchant_reference", resp.MerchantReference).
		Msg("pesapal: order created")

	return &domain.OrderReceipt{
		OrderTrackingID:   resp.OrderTrackingID,
		MerchantReference: resp.MerchantReference,
		RedirectURL:       resp.RedirectURL,
	}, nil
}

// GetTransactionStatus fetches the authoritative state of an order.
func (c *Client) GetTransactionStatus(ctx context.Context, token, orderTrackingID string) (*domain.TransactionStatus, error) {
	path := pathGetTxStatus + "?orderTrackingId=" + url.QueryEscape(orderTrackingID)

	var resp struct {
		domain.TransactionStatus
		Error *apiError `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil && resp.Error.Code != "" {
		return nil, &RequestError{Endpoint: pathGetTxStatus, StatusCode: http.StatusOK, Message: resp.Error.Message, Payload: resp.Error}
	}

	status := resp.TransactionStatus
	return &status, nil
}

// do performs a JSON round trip. A non-2xx response decodes into a
// RequestError carrying the upstream payload.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{Endpoint: path, StatusCode: resp.StatusCode}
		var payload map[string]interface{}
		if json.Unmarshal(raw, &payload) == nil {
			reqErr.Payload = payload
			if m, ok := payload["message"].(string); ok {
				reqErr.Message = m
			}
		} else {
			reqErr.Message = string(raw)
		}
		c.log.Warn().
			Str("endpoint", path).
			Int("status", resp.StatusCode).
			Str("message", reqErr.Message).
			Msg("pesapal: request failed")
		return reqErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}

// isAlreadyRegistered checks a transport-level RequestError for the
// gateway's duplicate-registration signals.
func isAlreadyRegistered(err error) bool {
	re, ok := err.(*RequestError)
	if !ok {
		return false
	}
	if re.StatusCode == http.StatusConflict {
		return true
	}
	return strings.Contains(strings.ToLower(re.Message), "already registered")
}
