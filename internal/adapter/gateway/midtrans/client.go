package midtrans

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventick/eventick/internal/core/domain"
	"github.com/eventick/eventick/internal/core/ports"
	"github.com/eventick/eventick/internal/observability"
)

type Config struct {
	BaseURL   string
	ServerKey string
	Timeout   time.Duration

	// ExpiryMinutes bounds how long an unpaid charge holds inventory
	// before the provider expires it.
	ExpiryMinutes int
}

// Client charges buyers through the Midtrans Core API over bank transfer.
type Client struct {
	baseURL       string
	authorization string
	serverKey     string
	expiryMinutes int
	hc            *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	expiry := cfg.ExpiryMinutes
	if expiry <= 0 {
		expiry = 15
	}

	return &Client{
		baseURL:       cfg.BaseURL,
		authorization: "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.ServerKey+":")),
		serverKey:     cfg.ServerKey,
		expiryMinutes: expiry,
		hc:            &http.Client{Timeout: timeout},
	}
}

type transactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type bankTransfer struct {
	Bank string `json:"bank"`
}

type customExpiry struct {
	OrderTime      string `json:"order_time"`
	ExpiryDuration int    `json:"expiry_duration"`
	Unit           string `json:"unit"`
}

type chargePayload struct {
	PaymentType        string             `json:"payment_type"`
	TransactionDetails transactionDetails `json:"transaction_details"`
	BankTransfer       bankTransfer       `json:"bank_transfer"`
	CustomExpiry       customExpiry       `json:"custom_expiry"`
}

// Charge posts a bank-transfer charge. Any network error, non-2xx status or
// unparseable body comes back wrapped in domain.ErrGatewayUnavailable so the
// purchase flow can compensate and fail the request.
func (c *Client) Charge(ctx context.Context, req ports.ChargeRequest) (*ports.ChargeResult, error) {
	start := time.Now()
	defer func() {
		observability.ObserveChargeDuration(time.Since(start))
	}()

	payload := chargePayload{
		PaymentType: "bank_transfer",
		TransactionDetails: transactionDetails{
			OrderID:     req.OrderID.String(),
			GrossAmount: req.AmountMinor,
		},
		BankTransfer: bankTransfer{Bank: req.Bank},
		CustomExpiry: customExpiry{
			OrderTime:      start.Format("2006-01-02 15:04:05 -0700"),
			ExpiryDuration: c.expiryMinutes,
			Unit:           "minute",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("charge: marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charge", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("charge: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", c.authorization)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("charge: %w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("charge: read response: %w: %v", domain.ErrGatewayUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"order_id":    req.OrderID,
			"status_code": resp.StatusCode,
		}).Warn("gateway charge rejected")
		return nil, fmt.Errorf("charge: %w: http %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var reply struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("charge: decode response: %w: %v", domain.ErrGatewayUnavailable, err)
	}

	return &ports.ChargeResult{
		OrderID:           reply.OrderID,
		TransactionStatus: reply.TransactionStatus,
		Raw:               raw,
	}, nil
}
