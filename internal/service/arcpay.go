package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"arcrelay/internal/model"
)

var (
	ErrProviderStatus   = errors.New("arcpay returned non-success status")
	ErrProviderResponse = errors.New("arcpay returned malformed response")
)

const maxProviderBody = 1 << 20

type ArcPayClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewArcPayClient(url, apiKey string, timeout time.Duration) *ArcPayClient {
	return &ArcPayClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type createOrderResponse struct {
	UUID   string `json:"uuid"`
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder posts req to ArcPay and returns the order it assigned.
// No retry is attempted.
func (c *ArcPayClient) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (model.Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return model.Order{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return model.Order{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("ArcKey", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return model.Order{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return model.Order{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Order{}, fmt.Errorf("%w: %d, body: %s", ErrProviderStatus, resp.StatusCode, truncate(respBody, 256))
	}

	var res createOrderResponse
	if err := json.Unmarshal(respBody, &res); err != nil {
		return model.Order{}, fmt.Errorf("%w: %v", ErrProviderResponse, err)
	}

	id := res.UUID
	if id == "" {
		id = res.ID
	}
	if id == "" || res.Status == "" {
		return model.Order{}, fmt.Errorf("%w: missing uuid or status", ErrProviderResponse)
	}

	return model.Order{UUID: id, Status: res.Status}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
