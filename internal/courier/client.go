// Package courier integrates the cash-on-delivery courier's dispatch API.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when courier credentials are not configured.
	ErrDisabled = errors.New("courier integration disabled")
)

// RejectedError carries the courier's own failure message.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("courier rejected dispatch: status=%d message=%q", e.Status, e.Message)
}

type DispatchRequest struct {
	Invoice          string  `json:"invoice"`
	RecipientName    string  `json:"recipient_name"`
	RecipientPhone   string  `json:"recipient_phone"`
	RecipientAddress string  `json:"recipient_address"`
	CODAmount        float64 `json:"cod_amount"`
	Note             string  `json:"note"`
}

type DispatchResult struct {
	ConsignmentID string `json:"consignment_id"`
	TrackingCode  string `json:"tracking_code"`
}

type dispatchResponse struct {
	Status        int    `json:"status"`
	Message       string `json:"message"`
	ConsignmentID string `json:"consignment_id"`
	TrackingCode  string `json:"tracking_code"`
}

type Client struct {
	baseURL string
	apiKey  string
	secret  string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL, apiKey, secret string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		secret:  secret,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != "" && c.apiKey != "" && c.secret != ""
}

// Dispatch hands a parcel to the courier. Success is HTTP 200 with a
// body-level status of 200; anything else is a failure and the caller must
// not transition the order.
func (c *Client) Dispatch(ctx context.Context, req DispatchRequest) (*DispatchResult, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal dispatch request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/create_order", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.apiKey)
	httpReq.Header.Set("Secret-Key", c.secret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("courier request: %w", err)
	}
	defer resp.Body.Close()

	var body dispatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode courier response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || body.Status != http.StatusOK {
		c.logger.Warn("Courier dispatch rejected",
			zap.String("invoice", req.Invoice),
			zap.Int("http_status", resp.StatusCode),
			zap.Int("body_status", body.Status),
			zap.String("message", body.Message))
		return nil, &RejectedError{Status: body.Status, Message: body.Message}
	}

	c.logger.Info("Courier dispatch accepted",
		zap.String("invoice", req.Invoice),
		zap.String("consignment_id", body.ConsignmentID),
		zap.String("tracking_code", body.TrackingCode))

	return &DispatchResult{
		ConsignmentID: body.ConsignmentID,
		TrackingCode:  body.TrackingCode,
	}, nil
}
