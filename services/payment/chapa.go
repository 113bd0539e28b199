// Package payment integrates the Chapa hosted-checkout gateway.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"unityconsult/config"
)

var (
	ErrPaymentFailed      = errors.New("chapa: payment failed or was cancelled")
	ErrTxRefNotFound      = errors.New("chapa: transaction reference not found")
	ErrUnexpectedResponse = errors.New("chapa: unexpected response from gateway")
)

// verifyTimeout bounds the verification round trip. It is the only call in
// the flow with an explicit timeout: the callback page blocks on it.
const verifyTimeout = 10 * time.Second

// ChapaClient is a lightweight HTTP client for the Chapa v1 API.
type ChapaClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewChapaClient creates a client from config.
func NewChapaClient(cfg config.Config) *ChapaClient {
	return &ChapaClient{
		secretKey:  cfg.ChapaSecretKey,
		baseURL:    cfg.ChapaBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// InitializeRequest is the payload for creating a hosted checkout.
type InitializeRequest struct {
	Amount      float64 `json:"-"`
	AmountStr   string  `json:"amount"`
	Currency    string  `json:"currency"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	TxRef       string  `json:"tx_ref"`
	CallbackURL string  `json:"callback_url"`
	ReturnURL   string  `json:"return_url,omitempty"`
}

// VerifyResult is the gateway's view of a completed payment attempt.
type VerifyResult struct {
	Status   string
	TxRef    string
	Amount   float64
	Currency string
}

// Initialize creates a checkout session and returns the hosted payment page
// URL the client is redirected to.
func (c *ChapaClient) Initialize(ctx context.Context, req InitializeRequest) (string, error) {
	req.AmountStr = fmt.Sprintf("%.2f", req.Amount)

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			CheckoutURL string `json:"checkout_url"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", req, &resp); err != nil {
		return "", fmt.Errorf("chapa initialize: %w", err)
	}
	if resp.Status != "success" || resp.Data.CheckoutURL == "" {
		return "", fmt.Errorf("%w (status=%s, msg=%s)", ErrUnexpectedResponse, resp.Status, resp.Message)
	}
	return resp.Data.CheckoutURL, nil
}

// Verify checks a transaction reference after the client returns from the
// gateway. The call is bounded by verifyTimeout.
func (c *ChapaClient) Verify(ctx context.Context, txRef string) (*VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
			TxRef    string  `json:"tx_ref"`
			Status   string  `json:"status"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+txRef, nil, &resp); err != nil {
		return nil, fmt.Errorf("chapa verify: %w", err)
	}

	switch resp.Status {
	case "success":
		// Data.Status still distinguishes a successful charge from a
		// declined or cancelled one.
	case "failed":
		return nil, ErrTxRefNotFound
	default:
		return nil, fmt.Errorf("%w (status=%s, msg=%s)", ErrUnexpectedResponse, resp.Status, resp.Message)
	}

	return &VerifyResult{
		Status:   resp.Data.Status,
		TxRef:    resp.Data.TxRef,
		Amount:   resp.Data.Amount,
		Currency: resp.Data.Currency,
	}, nil
}

// do sends a JSON request to baseURL+path and decodes the response into out.
func (c *ChapaClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return ErrTxRefNotFound
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
