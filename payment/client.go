package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"streamgate/service"

	"github.com/google/uuid"
)

// Client talks to the external payment provider's REST API. It implements
// service.PaymentProvider; the core injects it into the stream creation path
// and never imports a payment SDK directly.
type Client struct {
	APIURL     string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new payment provider client
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		APIURL: apiURL,
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type initiateRequest struct {
	Amount string `json:"amount"`
	To     string `json:"to"`
}

type paymentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// InitiatePayment starts a payment of amount (decimal string) to destination
func (c *Client) InitiatePayment(ctx context.Context, amount, destination string) (*service.PaymentResult, error) {
	reqBody := initiateRequest{
		Amount: amount,
		To:     destination,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/payments", c.APIURL), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Idempotence key guards against double charges on retried requests.
	req.Header.Set("Idempotence-Key", uuid.New().String())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	payment, err := c.do(req)
	if err != nil {
		return nil, err
	}

	return &service.PaymentResult{
		ID:     payment.ID,
		Status: service.PaymentStatus(payment.Status),
	}, nil
}

// CheckStatus returns the settlement state of a previously initiated payment
func (c *Client) CheckStatus(ctx context.Context, paymentID string) (service.PaymentStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/payments/%s", c.APIURL, paymentID), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	payment, err := c.do(req)
	if err != nil {
		return "", err
	}

	return service.PaymentStatus(payment.Status), nil
}

func (c *Client) do(req *http.Request) (*paymentResponse, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("payment api error: %s (status: %d)", string(respBody), resp.StatusCode)
	}

	var payment paymentResponse
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &payment, nil
}
